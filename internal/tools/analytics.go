package tools

import (
	"context"
	"encoding/json"
	"strings"

	"aurora/internal/chat"
	"aurora/internal/store"
)

type AnalyticsTool struct {
	store TaskStore
}

func NewAnalyticsTool(ts TaskStore) *AnalyticsTool {
	return &AnalyticsTool{store: ts}
}

func (t *AnalyticsTool) Name() string {
	return "get_analytics"
}

func (t *AnalyticsTool) Definition() chat.ToolDef {
	return emptyParamsDef(t.Name(), "Get analytics data for the user")
}

func (t *AnalyticsTool) Execute(_ context.Context, userID string, _ json.RawMessage) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return errorResult("user_id is required"), nil
	}
	tasks, err := t.store.ListTasks(userID, "")
	if err != nil {
		return "", err
	}

	total := len(tasks)
	completed := 0
	pending := 0
	for _, task := range tasks {
		switch task.Status {
		case store.StatusCompleted:
			completed++
		case store.StatusPending:
			pending++
		}
	}
	score := 0
	if total > 0 {
		score = int(float64(completed)/float64(total)*100 + 0.5)
	}

	return mustJSON(map[string]any{
		"status": "success",
		"analytics": map[string]any{
			"tasks_total":        total,
			"tasks_completed":    completed,
			"tasks_pending":      pending,
			"productivity_score": score,
		},
	}), nil
}
