package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aurora/internal/chat"
	"aurora/internal/store"
)

type AddTaskTool struct {
	store TaskStore
}

func NewAddTaskTool(ts TaskStore) *AddTaskTool {
	return &AddTaskTool{store: ts}
}

func (t *AddTaskTool) Name() string {
	return "add_task"
}

func (t *AddTaskTool) Definition() chat.ToolDef {
	return chat.ToolDef{
		Type: "function",
		Function: chat.ToolFunction{
			Name:        t.Name(),
			Description: "Add a new task",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "description": "Task title"},
					"description": map[string]any{"type": "string", "description": "Task description"},
					"priority":    map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}, "description": "Task priority"},
					"due_date":    map[string]any{"type": "string", "description": "Due date in YYYY-MM-DD format"},
					"tags":        map[string]any{"type": "string", "description": "Comma-separated tags"},
				},
				"required": []string{"title"},
			},
		},
	}
}

func (t *AddTaskTool) Execute(_ context.Context, userID string, args json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		DueDate     string `json:"due_date"`
		Tags        string `json:"tags"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("add_task args: %w", err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return errorResult("title is required"), nil
	}

	task := store.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Tags:        in.Tags,
		Status:      store.StatusPending,
	}
	if strings.TrimSpace(in.DueDate) != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return errorResult("%v", err), nil
		}
		task.DueDate = &due
	}

	created, err := t.store.CreateTask(task)
	if err != nil {
		return "", err
	}
	return mustJSON(map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Task '%s' added.", created.Title),
		"task":    map[string]any{"id": created.ID, "title": created.Title},
	}), nil
}
