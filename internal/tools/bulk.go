package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aurora/internal/chat"
	"aurora/internal/store"
)

// The three bulk tools share one shape: no parameters beyond the injected
// owner, one unconditional store call, one confirmation message.

type DeleteAllTasksTool struct {
	store TaskStore
}

type CompleteAllTasksTool struct {
	store TaskStore
}

type MarkAllIncompleteTool struct {
	store TaskStore
}

func NewDeleteAllTasksTool(ts TaskStore) *DeleteAllTasksTool {
	return &DeleteAllTasksTool{store: ts}
}

func NewCompleteAllTasksTool(ts TaskStore) *CompleteAllTasksTool {
	return &CompleteAllTasksTool{store: ts}
}

func NewMarkAllIncompleteTool(ts TaskStore) *MarkAllIncompleteTool {
	return &MarkAllIncompleteTool{store: ts}
}

func (t *DeleteAllTasksTool) Name() string    { return "delete_all_tasks" }
func (t *CompleteAllTasksTool) Name() string  { return "complete_all_tasks" }
func (t *MarkAllIncompleteTool) Name() string { return "mark_all_tasks_incomplete" }

func emptyParamsDef(name, description string) chat.ToolDef {
	return chat.ToolDef{
		Type: "function",
		Function: chat.ToolFunction{
			Name:        name,
			Description: description,
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
				"required":   []string{},
			},
		},
	}
}

func (t *DeleteAllTasksTool) Definition() chat.ToolDef {
	return emptyParamsDef(t.Name(), "Delete all tasks for the user")
}

func (t *CompleteAllTasksTool) Definition() chat.ToolDef {
	return emptyParamsDef(t.Name(), "Mark all tasks as completed for the user")
}

func (t *MarkAllIncompleteTool) Definition() chat.ToolDef {
	return emptyParamsDef(t.Name(), "Mark all tasks as incomplete for the user")
}

func (t *DeleteAllTasksTool) Execute(_ context.Context, userID string, _ json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	n, err := t.store.DeleteAllTasks(userID)
	if err != nil {
		return "", err
	}
	return mustJSON(map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Deleted %d tasks.", n),
	}), nil
}

func (t *CompleteAllTasksTool) Execute(_ context.Context, userID string, _ json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	if _, err := t.store.SetAllTaskStatus(userID, store.StatusCompleted); err != nil {
		return "", err
	}
	return mustJSON(map[string]any{
		"status":  "success",
		"message": "All tasks marked completed.",
	}), nil
}

func (t *MarkAllIncompleteTool) Execute(_ context.Context, userID string, _ json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	if _, err := t.store.SetAllTaskStatus(userID, store.StatusPending); err != nil {
		return "", err
	}
	return mustJSON(map[string]any{
		"status":  "success",
		"message": "All tasks marked pending.",
	}), nil
}
