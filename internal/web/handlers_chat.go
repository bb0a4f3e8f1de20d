package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aurora/internal/agent"
)

type chatRequest struct {
	Message        string `json:"message" binding:"required"`
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id format"})
		return
	}

	result, err := s.agent.RunTurn(c.Request.Context(), agent.TurnRequest{
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":            result.Response,
		"conversation_id":     result.ConversationID,
		"user_id":             result.UserID,
		"tool_calls_executed": result.ToolCallsExecuted,
		"original_request":    gin.H{"message": req.Message},
	})
}

// ownedConversation resolves the :id conversation for the user_id query
// parameter; missing and foreign-owned conversations both read as 404.
func (s *Server) ownedConversation(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return "", false
	}
	conv, err := s.store.GetConversation(c.Param("id"))
	if err != nil || conv.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return "", false
	}
	return conv.ID, true
}

func (s *Server) handleListConversations(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	convs, err := s.store.ListConversations(userID)
	if err != nil {
		storeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(convs))
	for _, conv := range convs {
		out = append(out, gin.H{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
			"updated_at": conv.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetConversation(c *gin.Context) {
	convID, ok := s.ownedConversation(c)
	if !ok {
		return
	}
	conv, err := s.store.GetConversation(convID)
	if err != nil {
		storeError(c, err)
		return
	}
	messages, err := s.store.ListMessages(convID)
	if err != nil {
		storeError(c, err)
		return
	}

	msgs := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, gin.H{
			"id":        m.ID,
			"role":      m.Role,
			"content":   m.Content,
			"timestamp": m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         conv.ID,
		"title":      conv.Title,
		"created_at": conv.CreatedAt,
		"updated_at": conv.UpdatedAt,
		"messages":   msgs,
	})
}

func (s *Server) handleDeleteConversation(c *gin.Context) {
	convID, ok := s.ownedConversation(c)
	if !ok {
		return
	}
	if err := s.store.DeleteConversation(convID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
