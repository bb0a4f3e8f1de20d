package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/internal/agent"
	"aurora/internal/auth"
	"aurora/internal/store"
)

// Server is the Aurora HTTP server.
type Server struct {
	store  store.Store
	issuer *auth.TokenIssuer
	agent  *agent.Agent
	router *gin.Engine
}

// NewServer wires the routes over the given dependencies.
func NewServer(st store.Store, issuer *auth.TokenIssuer, ag *agent.Agent, corsOrigins []string) *Server {
	router := gin.Default()

	s := &Server{
		store:  st,
		issuer: issuer,
		agent:  ag,
		router: router,
	}

	router.Use(corsMiddleware(corsOrigins))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/me", s.requireAuth(), s.handleMe)
	}

	tasks := router.Group("/tasks", s.requireAuth())
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.GET("/stats", s.handleTaskStats)
		tasks.GET("/:id", s.handleGetTask)
		tasks.PUT("/:id", s.handleUpdateTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
	}

	router.POST("/chat", s.handleChat)
	router.GET("/conversations", s.handleListConversations)
	router.GET("/conversations/:id", s.handleGetConversation)
	router.DELETE("/conversations/:id", s.handleDeleteConversation)

	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Aurora Task Agent API"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
