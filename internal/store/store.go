package store

import (
	"errors"
	"time"
)

// Sentinel errors callers branch on; the web layer maps them to HTTP status.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store is the persistence interface backing the task, user and
// conversation state.
type Store interface {
	// User operations
	CreateUser(u User) (User, error)
	GetUser(id string) (User, error)
	GetUserByEmail(email string) (User, error)

	// Task operations
	CreateTask(t Task) (Task, error)
	GetTask(id string) (Task, error)
	ListTasks(userID, status string) ([]Task, error)
	ListTasksByTitle(userID, title string) ([]Task, error)
	UpdateTask(id string, patch TaskPatch) (Task, error)
	DeleteTask(id string) error
	DeleteAllTasks(userID string) (int, error)
	SetAllTaskStatus(userID, status string) (int, error)
	TaskStatsFor(userID string, now time.Time) (TaskStats, error)

	// Conversation operations
	CreateConversation(userID, title string) (Conversation, error)
	GetConversation(id string) (Conversation, error)
	ListConversations(userID string) ([]Conversation, error)
	DeleteConversation(id string) error

	// Message operations
	AppendMessage(conversationID string, m Message) (Message, error)
	RecentMessages(conversationID string, limit int) ([]Message, error)
	ListMessages(conversationID string) ([]Message, error)

	// Lifecycle
	Close() error
}
