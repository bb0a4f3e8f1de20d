package store

import (
	"strings"
	"time"
)

// Task status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// User is a registered account. Tasks and conversations hang off it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Task is a single todo item owned by a user. UserID is immutable after
// creation; titles are not unique per owner.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskPatch carries optional field updates; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	Tags        *string
}

// Conversation groups an ordered message history for one user.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one chat turn entry. Messages are append-only; Seq is a
// per-conversation monotonic sequence assigned at insert time.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Seq            int       `json:"-"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	ToolCallID     string    `json:"tool_call_id,omitempty"`
	CreatedAt      time.Time `json:"timestamp"`
}

// TaskStats is the dashboard aggregate for one user.
type TaskStats struct {
	TasksDueSoon      int `json:"tasks_due_soon"`
	CompletedToday    int `json:"completed_today"`
	ProductivityScore int `json:"productivity_score"`
	TotalTasks        int `json:"total_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
}

// NormalizeStatus maps arbitrary input onto a known status, defaulting to pending.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusPending, StatusCompleted, StatusArchived:
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return StatusPending
	}
}

// NormalizePriority maps arbitrary input onto a known priority, defaulting to medium.
func NormalizePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return PriorityMedium
	}
}

// ValidStatus reports whether s names a known status. Callers that accept
// explicit user input check this before handing the value to the store;
// the normalize functions only cover omitted fields.
func ValidStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusPending, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// ValidPriority reports whether s names a known priority.
func ValidPriority(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
