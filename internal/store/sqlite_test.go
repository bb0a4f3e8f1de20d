package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *SQLiteStore, email string) User {
	t.Helper()
	u, err := s.CreateUser(User{Email: email, PasswordHash: "x", FullName: "Test User"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestSQLiteStore_UserCRUD(t *testing.T) {
	s := newTestStore(t)

	u := mustCreateUser(t, s, "Alice@Example.com")
	if u.ID == "" {
		t.Fatal("expected generated user id")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("Email=%q, want lowercased", u.Email)
	}

	loaded, err := s.GetUser(u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if loaded.FullName != "Test User" {
		t.Fatalf("FullName=%q, want %q", loaded.FullName, "Test User")
	}

	byEmail, err := s.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("ID=%q, want %q", byEmail.ID, u.ID)
	}

	_, err = s.CreateUser(User{Email: "alice@example.com", PasswordHash: "y"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email err=%v, want ErrEmailTaken", err)
	}

	_, err = s.GetUser("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user err=%v, want ErrNotFound", err)
	}
}

func TestValidEnums(t *testing.T) {
	statusCases := []struct {
		in   string
		want bool
	}{
		{"pending", true},
		{"completed", true},
		{"archived", true},
		{" Completed ", true},
		{"bogus", false},
		{"", false},
	}
	for _, tc := range statusCases {
		if got := ValidStatus(tc.in); got != tc.want {
			t.Fatalf("ValidStatus(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}

	priorityCases := []struct {
		in   string
		want bool
	}{
		{"low", true},
		{"medium", true},
		{"high", true},
		{"urgent", false},
		{"", false},
	}
	for _, tc := range priorityCases {
		if got := ValidPriority(tc.in); got != tc.want {
			t.Fatalf("ValidPriority(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSQLiteStore_TaskDefaults(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	task, err := s.CreateTask(Task{UserID: u.ID, Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Status != StatusPending {
		t.Fatalf("Status=%q, want %q", task.Status, StatusPending)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("Priority=%q, want %q", task.Priority, PriorityMedium)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestSQLiteStore_TaskDueDateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	task, err := s.CreateTask(Task{UserID: u.ID, Title: "Pay rent", DueDate: &due})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	loaded, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if loaded.DueDate == nil || !loaded.DueDate.Equal(due) {
		t.Fatalf("DueDate=%v, want %v", loaded.DueDate, due)
	}

	noDue, _ := s.CreateTask(Task{UserID: u.ID, Title: "No deadline"})
	loaded2, _ := s.GetTask(noDue.ID)
	if loaded2.DueDate != nil {
		t.Fatalf("DueDate=%v, want nil", loaded2.DueDate)
	}
}

func TestSQLiteStore_ListTasksFilter(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")
	other := mustCreateUser(t, s, "other@example.com")

	completed := StatusCompleted
	if _, err := s.CreateTask(Task{UserID: u.ID, Title: "a"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.CreateTask(Task{UserID: u.ID, Title: "b", Status: completed}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.CreateTask(Task{UserID: other.ID, Title: "c"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	all, err := s.ListTasks(u.ID, "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered count=%d, want 2", len(all))
	}

	allKeyword, _ := s.ListTasks(u.ID, "all")
	if len(allKeyword) != 2 {
		t.Fatalf("status=all count=%d, want 2", len(allKeyword))
	}

	pending, _ := s.ListTasks(u.ID, StatusPending)
	if len(pending) != 1 || pending[0].Title != "a" {
		t.Fatalf("pending tasks unexpected: %+v", pending)
	}
}

func TestSQLiteStore_ListTasksByTitleOldestFirst(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	first, err := s.CreateTask(Task{UserID: u.ID, Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := s.CreateTask(Task{UserID: u.ID, Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	matches, err := s.ListTasksByTitle(u.ID, "Buy milk")
	if err != nil {
		t.Fatalf("ListTasksByTitle: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("count=%d, want 2", len(matches))
	}
	if matches[0].ID != first.ID || matches[1].ID != second.ID {
		t.Fatalf("order unexpected: got [%s %s], want [%s %s]",
			matches[0].ID, matches[1].ID, first.ID, second.ID)
	}
}

func TestSQLiteStore_UpdateTask(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	task, _ := s.CreateTask(Task{UserID: u.ID, Title: "Draft report"})

	title := "Final report"
	status := StatusCompleted
	updated, err := s.UpdateTask(task.ID, TaskPatch{Title: &title, Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "Final report" || updated.Status != StatusCompleted {
		t.Fatalf("updated task unexpected: %+v", updated)
	}
	if updated.Priority != PriorityMedium {
		t.Fatalf("Priority=%q changed by unrelated patch", updated.Priority)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) && !updated.UpdatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("UpdatedAt went backwards: %v -> %v", task.UpdatedAt, updated.UpdatedAt)
	}

	_, err = s.UpdateTask("nonexistent", TaskPatch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing task err=%v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_DeleteTask(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	task, _ := s.CreateTask(Task{UserID: u.ID, Title: "temp"})
	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_BulkOperations(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")
	other := mustCreateUser(t, s, "other@example.com")

	for _, title := range []string{"a", "b", "c"} {
		if _, err := s.CreateTask(Task{UserID: u.ID, Title: title}); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}
	if _, err := s.CreateTask(Task{UserID: other.ID, Title: "keep"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	n, err := s.SetAllTaskStatus(u.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("SetAllTaskStatus: %v", err)
	}
	if n != 3 {
		t.Fatalf("SetAllTaskStatus affected=%d, want 3", n)
	}

	deleted, err := s.DeleteAllTasks(u.ID)
	if err != nil {
		t.Fatalf("DeleteAllTasks: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("DeleteAllTasks deleted=%d, want 3", deleted)
	}

	// Other owner untouched.
	remaining, _ := s.ListTasks(other.ID, "")
	if len(remaining) != 1 {
		t.Fatalf("other owner count=%d, want 1", len(remaining))
	}
}

func TestSQLiteStore_TaskStats(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	now := time.Now().UTC()
	soon := now.Add(48 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)

	if _, err := s.CreateTask(Task{UserID: u.ID, Title: "due soon", DueDate: &soon}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.CreateTask(Task{UserID: u.ID, Title: "due far", DueDate: &far}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	done, _ := s.CreateTask(Task{UserID: u.ID, Title: "done"})
	status := StatusCompleted
	if _, err := s.UpdateTask(done.ID, TaskPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	stats, err := s.TaskStatsFor(u.ID, now)
	if err != nil {
		t.Fatalf("TaskStatsFor: %v", err)
	}
	if stats.TasksDueSoon != 1 {
		t.Fatalf("TasksDueSoon=%d, want 1", stats.TasksDueSoon)
	}
	if stats.TotalTasks != 3 {
		t.Fatalf("TotalTasks=%d, want 3", stats.TotalTasks)
	}
	if stats.CompletedTasks != 1 {
		t.Fatalf("CompletedTasks=%d, want 1", stats.CompletedTasks)
	}
	if stats.CompletedToday != 1 {
		t.Fatalf("CompletedToday=%d, want 1", stats.CompletedToday)
	}
	if stats.ProductivityScore != 33 {
		t.Fatalf("ProductivityScore=%d, want 33", stats.ProductivityScore)
	}
}

func TestSQLiteStore_TaskStatsEmpty(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	stats, err := s.TaskStatsFor(u.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("TaskStatsFor: %v", err)
	}
	if stats.ProductivityScore != 0 || stats.TotalTasks != 0 {
		t.Fatalf("empty stats unexpected: %+v", stats)
	}
}

func TestSQLiteStore_ConversationLifecycle(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")

	conv, err := s.CreateConversation(u.ID, "")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if conv.Title != "New Chat" {
		t.Fatalf("Title=%q, want %q", conv.Title, "New Chat")
	}

	loaded, err := s.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if loaded.UserID != u.ID {
		t.Fatalf("UserID=%q, want %q", loaded.UserID, u.ID)
	}

	if _, err := s.CreateConversation(u.ID, "Second"); err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	convs, err := s.ListConversations(u.ID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("ListConversations count=%d, want 2", len(convs))
	}

	if err := s.DeleteConversation(conv.ID); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}
	if _, err := s.GetConversation(conv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted conversation err=%v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_MessageOrdering(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")
	conv, _ := s.CreateConversation(u.ID, "chat")

	contents := []string{"one", "two", "three", "four"}
	for i, c := range contents {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		if _, err := s.AppendMessage(conv.ID, Message{Role: role, Content: c}); err != nil {
			t.Fatalf("AppendMessage %d: %v", i, err)
		}
	}

	all, err := s.ListMessages(conv.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListMessages count=%d, want 4", len(all))
	}
	for i, m := range all {
		if m.Content != contents[i] {
			t.Fatalf("msg[%d].Content=%q, want %q", i, m.Content, contents[i])
		}
		if m.Seq != i {
			t.Fatalf("msg[%d].Seq=%d, want %d", i, m.Seq, i)
		}
	}

	// RecentMessages returns newest first.
	recent, err := s.RecentMessages(conv.ID, 2)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(recent) != 2 || recent[0].Content != "four" || recent[1].Content != "three" {
		t.Fatalf("RecentMessages unexpected: %+v", recent)
	}
}

func TestSQLiteStore_DeleteConversationRemovesMessages(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "u@example.com")
	conv, _ := s.CreateConversation(u.ID, "chat")

	if _, err := s.AppendMessage(conv.ID, Message{Role: "user", Content: "hello"}); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := s.DeleteConversation(conv.ID); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}

	msgs, err := s.ListMessages(conv.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("orphan messages=%d, want 0", len(msgs))
	}
}
