package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aurora/internal/chat"

	"github.com/google/uuid"
)

type DeleteTaskTool struct {
	store TaskStore
}

func NewDeleteTaskTool(ts TaskStore) *DeleteTaskTool {
	return &DeleteTaskTool{store: ts}
}

func (t *DeleteTaskTool) Name() string {
	return "delete_task"
}

func (t *DeleteTaskTool) Definition() chat.ToolDef {
	return chat.ToolDef{
		Type: "function",
		Function: chat.ToolFunction{
			Name:        t.Name(),
			Description: "Delete a task. Handles duplicates: if multiple tasks have the same title, use task_id.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_title": map[string]any{"type": "string", "description": "Title of the task to delete (if unique)"},
					"task_id":    map[string]any{"type": "string", "description": "The specific UUID of the task (use this to resolve duplicates)"},
				},
			},
		},
	}
}

func (t *DeleteTaskTool) Execute(_ context.Context, userID string, args json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	var in struct {
		TaskTitle string `json:"task_title"`
		TaskID    string `json:"task_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("delete_task args: %w", err)
	}
	if strings.TrimSpace(in.TaskTitle) == "" && strings.TrimSpace(in.TaskID) == "" {
		return errorResult("Please provide either a task title or task ID."), nil
	}

	// Direct delete by id. A task owned by someone else reads as not-found;
	// never reveal that the id exists.
	if id := strings.TrimSpace(in.TaskID); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return errorResult("Invalid ID format."), nil
		}
		task, err := t.store.GetTask(id)
		if err != nil || task.UserID != userID {
			return errorResult("Task ID %s not found.", id), nil
		}
		if err := t.store.DeleteTask(id); err != nil {
			return "", err
		}
		return mustJSON(map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Task '%s' deleted.", task.Title),
		}), nil
	}

	// Delete by title with duplicate check. Candidates come back ordered by
	// ascending creation time so "the first one" is stable across turns.
	title := strings.TrimSpace(in.TaskTitle)
	tasks, err := t.store.ListTasksByTitle(userID, title)
	if err != nil {
		return "", err
	}
	switch len(tasks) {
	case 0:
		return errorResult("Task '%s' not found.", title), nil
	case 1:
		if err := t.store.DeleteTask(tasks[0].ID); err != nil {
			return "", err
		}
		return mustJSON(map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Task '%s' deleted.", title),
		}), nil
	}

	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		created := task.CreatedAt.Format("2006-01-02 15:04:05")
		due := ""
		if task.DueDate != nil {
			due = fmt.Sprintf(" | Due: %s", task.DueDate.Format("2006-01-02"))
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] Created: %s%s (ID: %s)",
			i+1, strings.ToUpper(task.Priority), created, due, task.ID))
	}
	return mustJSON(map[string]any{
		"status": "error",
		"message": fmt.Sprintf("I found multiple tasks named '%s'. Which one?\n%s\n\nYou can say 'Delete number 1' or 'Delete the high priority one'.",
			title, strings.Join(lines, "\n")),
		"requires_clarification": true,
	}), nil
}
