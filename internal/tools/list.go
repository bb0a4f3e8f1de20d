package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aurora/internal/chat"
	"aurora/internal/store"
)

type ListTasksTool struct {
	store TaskStore
}

func NewListTasksTool(ts TaskStore) *ListTasksTool {
	return &ListTasksTool{store: ts}
}

func (t *ListTasksTool) Name() string {
	return "list_tasks"
}

func (t *ListTasksTool) Definition() chat.ToolDef {
	return chat.ToolDef{
		Type: "function",
		Function: chat.ToolFunction{
			Name:        t.Name(),
			Description: "List tasks for the user",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{"type": "string", "enum": []string{"all", "pending", "completed", "archived"}},
				},
			},
		},
	}
}

func (t *ListTasksTool) Execute(_ context.Context, userID string, args json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("list_tasks args: %w", err)
	}

	tasks, err := t.store.ListTasks(userID, in.Status)
	if err != nil {
		return "", err
	}

	summaries := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, taskSummary(task))
	}
	return mustJSON(map[string]any{
		"status": "success",
		"tasks":  summaries,
	}), nil
}

func taskSummary(t store.Task) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"title":      t.Title,
		"priority":   t.Priority,
		"status":     t.Status,
		"due_date":   formatDueDate(t.DueDate),
		"created_at": t.CreatedAt.Format(time.RFC3339),
	}
}
