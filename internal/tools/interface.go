package tools

import (
	"context"
	"encoding/json"

	"aurora/internal/chat"
	"aurora/internal/store"
)

// Tool is one callable operation advertised to the model. Execute receives
// the authenticated owner id separately from the model-issued arguments;
// owner identity inside args is never trusted.
type Tool interface {
	Name() string
	Definition() chat.ToolDef
	Execute(ctx context.Context, userID string, args json.RawMessage) (string, error)
}

// TaskStore is the slice of the persistence layer the task tools consume.
type TaskStore interface {
	CreateTask(t store.Task) (store.Task, error)
	GetTask(id string) (store.Task, error)
	ListTasks(userID, status string) ([]store.Task, error)
	ListTasksByTitle(userID, title string) ([]store.Task, error)
	UpdateTask(id string, patch store.TaskPatch) (store.Task, error)
	DeleteTask(id string) error
	DeleteAllTasks(userID string) (int, error)
	SetAllTaskStatus(userID, status string) (int, error)
}
