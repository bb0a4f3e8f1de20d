package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aurora/internal/chat"
	"aurora/internal/store"
)

type UpdateTaskTool struct {
	store TaskStore
}

func NewUpdateTaskTool(ts TaskStore) *UpdateTaskTool {
	return &UpdateTaskTool{store: ts}
}

func (t *UpdateTaskTool) Name() string {
	return "update_task"
}

func (t *UpdateTaskTool) Definition() chat.ToolDef {
	return chat.ToolDef{
		Type: "function",
		Function: chat.ToolFunction{
			Name:        t.Name(),
			Description: "Update an existing task. Identify the task by its CURRENT title.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"current_title": map[string]any{"type": "string", "description": "The exact title of the task to update"},
					"new_title":     map[string]any{"type": "string", "description": "The new title (if renaming)"},
					"description":   map[string]any{"type": "string", "description": "New description"},
					"priority":      map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
					"status":        map[string]any{"type": "string", "enum": []string{"pending", "completed"}},
					"due_date":      map[string]any{"type": "string", "description": "YYYY-MM-DD"},
					"tags":          map[string]any{"type": "string"},
				},
				"required": []string{"current_title"},
			},
		},
	}
}

func (t *UpdateTaskTool) Execute(_ context.Context, userID string, args json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	var in struct {
		CurrentTitle string `json:"current_title"`
		NewTitle     string `json:"new_title"`
		Description  string `json:"description"`
		Priority     string `json:"priority"`
		Status       string `json:"status"`
		DueDate      string `json:"due_date"`
		Tags         string `json:"tags"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("update_task args: %w", err)
	}
	if strings.TrimSpace(in.CurrentTitle) == "" {
		return errorResult("current_title is required"), nil
	}

	title := strings.TrimSpace(in.CurrentTitle)
	tasks, err := t.store.ListTasksByTitle(userID, title)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return errorResult("Task not found."), nil
	}
	// Never guess among duplicates for a mutation; nothing changes until the
	// caller disambiguates.
	if len(tasks) > 1 {
		return errorResult("Found %d tasks named '%s'. Please rename them via ID first or delete the duplicates.",
			len(tasks), title), nil
	}

	var patch store.TaskPatch
	if strings.TrimSpace(in.NewTitle) != "" {
		patch.Title = &in.NewTitle
	}
	if in.Description != "" {
		patch.Description = &in.Description
	}
	if in.Priority != "" {
		patch.Priority = &in.Priority
	}
	if in.Status != "" {
		patch.Status = &in.Status
	}
	if in.Tags != "" {
		patch.Tags = &in.Tags
	}
	if strings.TrimSpace(in.DueDate) != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return errorResult("%v", err), nil
		}
		patch.DueDate = &due
	}

	updated, err := t.store.UpdateTask(tasks[0].ID, patch)
	if err != nil {
		return "", err
	}
	return mustJSON(map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Task '%s' updated.", title),
		"task":    map[string]any{"id": updated.ID, "title": updated.Title},
	}), nil
}
