package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func (s *SQLiteStore) CreateConversation(userID, title string) (Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return Conversation{}, fmt.Errorf("conversation user id is empty")
	}
	if strings.TrimSpace(title) == "" {
		title = "New Chat"
	}
	now := nowUTC()
	c := Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.Exec(`
		INSERT INTO conversations (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return Conversation{}, fmt.Errorf("insert conversation: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) GetConversation(id string) (Conversation, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations WHERE id=?`, id)

	var c Conversation
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Conversation{}, ErrNotFound
		}
		return Conversation{}, fmt.Errorf("load conversation: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

func (s *SQLiteStore) ListConversations(userID string) ([]Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations WHERE user_id=? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		c.UpdatedAt = parseTime(updatedAt)
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// DeleteConversation removes the conversation and its messages. The message
// delete is explicit rather than relying on the FK cascade so the behavior
// does not depend on the foreign_keys pragma.
func (s *SQLiteStore) DeleteConversation(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id=?`, id); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM conversations WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// AppendMessage inserts one message with the next per-conversation sequence
// number and bumps the conversation's updated_at. The seq assignment and
// insert share one transaction, so concurrent turns cannot allocate the same
// slot.
func (s *SQLiteStore) AppendMessage(conversationID string, m Message) (Message, error) {
	if strings.TrimSpace(conversationID) == "" {
		return Message{}, fmt.Errorf("conversation id is empty")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.ConversationID = conversationID
	m.CreatedAt = nowUTC()

	tx, err := s.db.Begin()
	if err != nil {
		return Message{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRow(`
		SELECT COALESCE(MAX(seq), -1) + 1 FROM messages WHERE conversation_id=?`,
		conversationID).Scan(&m.Seq); err != nil {
		return Message{}, fmt.Errorf("next seq: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO messages (id, conversation_id, seq, role, content, tool_call_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.Seq, m.Role, m.Content, m.ToolCallID, formatTime(m.CreatedAt),
	); err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}

	if _, err := tx.Exec(`UPDATE conversations SET updated_at=? WHERE id=?`,
		formatTime(m.CreatedAt), conversationID); err != nil {
		return Message{}, fmt.Errorf("touch conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Message{}, fmt.Errorf("commit message: %w", err)
	}
	return m, nil
}

// RecentMessages returns up to limit messages, newest first. Callers that
// need chronological order reverse the slice.
func (s *SQLiteStore) RecentMessages(conversationID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT id, conversation_id, seq, role, content, tool_call_id, created_at
		FROM messages WHERE conversation_id=? ORDER BY seq DESC LIMIT ?`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListMessages returns the full history in chronological order.
func (s *SQLiteStore) ListMessages(conversationID string) ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT id, conversation_id, seq, role, content, tool_call_id, created_at
		FROM messages WHERE conversation_id=? ORDER BY seq ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Seq, &m.Role, &m.Content,
			&m.ToolCallID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
