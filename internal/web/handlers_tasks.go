package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"aurora/internal/store"
)

type taskCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Tags        string  `json:"tags"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Tags        *string `json:"tags"`
}

// parseDueInput accepts either a full RFC 3339 timestamp or a bare
// YYYY-MM-DD date.
func parseDueInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("due_date must be RFC 3339 or YYYY-MM-DD, got %q", s)
}

// ownedTask loads the task and enforces ownership: absent ids read as 404,
// someone else's ids as 403.
func (s *Server) ownedTask(c *gin.Context) (store.Task, bool) {
	task, err := s.store.GetTask(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return store.Task{}, false
	}
	if task.UserID != currentUser(c).ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
		return store.Task{}, false
	}
	return task, true
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(currentUser(c).ID, c.Query("status"))
	if err != nil {
		storeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []store.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskCreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Omitted enum fields default downstream; supplied ones must be valid.
	if strings.TrimSpace(req.Status) != "" && !store.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", req.Status)})
		return
	}
	if strings.TrimSpace(req.Priority) != "" && !store.ValidPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid priority %q", req.Priority)})
		return
	}

	task := store.Task{
		UserID:      currentUser(c).ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		due, err := parseDueInput(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		task.DueDate = &due
	}

	created, err := s.store.CreateTask(task)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}

	var req taskUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != nil && !store.ValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", *req.Status)})
		return
	}
	if req.Priority != nil && !store.ValidPriority(*req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid priority %q", *req.Priority)})
		return
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		due, err := parseDueInput(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.DueDate = &due
	}

	updated, err := s.store.UpdateTask(task.ID, patch)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	if err := s.store.DeleteTask(task.ID); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleTaskStats(c *gin.Context) {
	stats, err := s.store.TaskStatsFor(currentUser(c).ID, time.Now())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
