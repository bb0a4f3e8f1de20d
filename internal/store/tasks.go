package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const taskColumns = "id, user_id, title, description, status, priority, due_date, tags, created_at, updated_at"

func (s *SQLiteStore) CreateTask(t Task) (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return Task{}, fmt.Errorf("task title is empty")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return Task{}, fmt.Errorf("task user id is empty")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Status = NormalizeStatus(t.Status)
	t.Priority = NormalizePriority(t.Priority)
	now := nowUTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority,
		formatNullableTime(t.DueDate), t.Tags, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) GetTask(id string) (Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id=?`, id)
	return scanTaskRow(row)
}

// ListTasks returns the user's tasks newest-created first. An empty or "all"
// status returns every task.
func (s *SQLiteStore) ListTasks(userID, status string) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=?`
	args := []any{userID}
	status = strings.TrimSpace(status)
	if status != "" && status != "all" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListTasksByTitle returns the user's tasks with an exact title match,
// ordered by ascending creation time. This ordering is what "the first one"
// means in any disambiguation surfaced back to the user.
func (s *SQLiteStore) ListTasksByTitle(userID, title string) ([]Task, error) {
	rows, err := s.db.Query(`
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id=? AND title=? ORDER BY created_at ASC`, userID, title)
	if err != nil {
		return nil, fmt.Errorf("list tasks by title: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (s *SQLiteStore) UpdateTask(id string, patch TaskPatch) (Task, error) {
	t, err := s.GetTask(id)
	if err != nil {
		return Task{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Task{}, fmt.Errorf("task title is empty")
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = NormalizeStatus(*patch.Status)
	}
	if patch.Priority != nil {
		t.Priority = NormalizePriority(*patch.Priority)
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	t.UpdatedAt = nowUTC()

	_, err = s.db.Exec(`
		UPDATE tasks SET title=?, description=?, status=?, priority=?, due_date=?, tags=?, updated_at=?
		WHERE id=?`,
		t.Title, t.Description, t.Status, t.Priority,
		formatNullableTime(t.DueDate), t.Tags, formatTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteAllTasks(userID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE user_id=?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) SetAllTaskStatus(userID, status string) (int, error) {
	res, err := s.db.Exec(`UPDATE tasks SET status=?, updated_at=? WHERE user_id=?`,
		NormalizeStatus(status), formatTime(nowUTC()), userID)
	if err != nil {
		return 0, fmt.Errorf("set all task status: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// TaskStatsFor computes the dashboard aggregate. The due-soon window runs from
// now to now+7d over pending tasks; completed-today counts from local midnight.
func (s *SQLiteStore) TaskStatsFor(userID string, now time.Time) (TaskStats, error) {
	var stats TaskStats

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sevenDaysLater := now.Add(7 * 24 * time.Hour)

	err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE user_id=?`, userID).Scan(&stats.TotalTasks)
	if err != nil {
		return TaskStats{}, fmt.Errorf("count tasks: %w", err)
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE user_id=? AND status=?`,
		userID, StatusCompleted).Scan(&stats.CompletedTasks)
	if err != nil {
		return TaskStats{}, fmt.Errorf("count completed: %w", err)
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE user_id=? AND status=? AND updated_at>=?`,
		userID, StatusCompleted, formatTime(todayStart)).Scan(&stats.CompletedToday)
	if err != nil {
		return TaskStats{}, fmt.Errorf("count completed today: %w", err)
	}
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM tasks
		WHERE user_id=? AND status=? AND due_date IS NOT NULL AND due_date>=? AND due_date<=?`,
		userID, StatusPending, formatTime(now), formatTime(sevenDaysLater)).Scan(&stats.TasksDueSoon)
	if err != nil {
		return TaskStats{}, fmt.Errorf("count due soon: %w", err)
	}

	if stats.TotalTasks > 0 {
		stats.ProductivityScore = int(float64(stats.CompletedTasks)/float64(stats.TotalTasks)*100 + 0.5)
	}
	return stats, nil
}

func scanTaskRow(row *sql.Row) (Task, error) {
	var t Task
	var due sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&due, &t.Tags, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Task{}, ErrNotFound
		}
		return Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.DueDate = scanNullableTime(due)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		var t Task
		var due sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&due, &t.Tags, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.DueDate = scanNullableTime(due)
		t.CreatedAt = parseTime(createdAt)
		t.UpdatedAt = parseTime(updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
