package tools

import (
	"encoding/json"
	"fmt"
	"time"
)

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"status":"error","message":"marshal result: %s"}`, err.Error())
	}
	return string(data)
}

func errorResult(format string, args ...any) string {
	return mustJSON(map[string]any{
		"status":  "error",
		"message": fmt.Sprintf(format, args...),
	})
}

const dueDateLayout = "2006-01-02"

// parseDueDate parses the literal YYYY-MM-DD form the tool schemas declare.
func parseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due_date must be in YYYY-MM-DD format, got %q", s)
	}
	return t, nil
}

func formatDueDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dueDateLayout)
}
