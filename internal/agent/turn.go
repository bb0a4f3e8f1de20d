package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aurora/internal/chat"
	"aurora/internal/provider"
	"aurora/internal/store"
)

// TurnRequest is one user utterance addressed to a conversation.
type TurnRequest struct {
	UserID         string
	ConversationID string
	Message        string
}

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	Response          string
	ConversationID    string
	UserID            string
	ToolCallsExecuted bool
}

// RunTurn executes one full dispatch sequence. The turn is fail-soft: a
// failure talking to the model never aborts it; the synthesized fallback
// reply is persisted like any other assistant message, so every turn leaves
// exactly one user and one assistant message behind.
func (a *Agent) RunTurn(ctx context.Context, req TurnRequest) (TurnResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return TurnResult{}, fmt.Errorf("user id is required")
	}

	conv, err := a.resolveConversation(req)
	if err != nil {
		return TurnResult{}, err
	}

	// Persist the user message before any model call so history survives a
	// provider failure.
	if _, err := a.store.AppendMessage(conv.ID, store.Message{
		Role:    chat.RoleUser,
		Content: req.Message,
	}); err != nil {
		return TurnResult{}, fmt.Errorf("persist user message: %w", err)
	}

	messages, err := a.buildPromptMessages(conv.ID)
	if err != nil {
		return TurnResult{}, err
	}

	finalResp, toolCallsExecuted := a.completeTurn(ctx, messages, req.UserID)

	persisted := finalResp
	if strings.TrimSpace(persisted) == "" {
		persisted = "Processed."
	}
	if _, err := a.store.AppendMessage(conv.ID, store.Message{
		Role:    chat.RoleAssistant,
		Content: persisted,
	}); err != nil {
		return TurnResult{}, fmt.Errorf("persist assistant message: %w", err)
	}

	if strings.TrimSpace(finalResp) == "" {
		finalResp = "Done."
	}
	return TurnResult{
		Response:          finalResp,
		ConversationID:    conv.ID,
		UserID:            req.UserID,
		ToolCallsExecuted: toolCallsExecuted,
	}, nil
}

// resolveConversation reuses the requested conversation when it exists and
// belongs to the caller. Any other conversation_id (unknown, malformed, or
// owned by someone else) deliberately falls back to a fresh conversation
// instead of erroring; a chat turn always has somewhere to land.
func (a *Agent) resolveConversation(req TurnRequest) (store.Conversation, error) {
	if id := strings.TrimSpace(req.ConversationID); id != "" {
		conv, err := a.store.GetConversation(id)
		if err == nil && conv.UserID == req.UserID {
			return conv, nil
		}
	}
	conv, err := a.store.CreateConversation(req.UserID, deriveTitle(req.Message))
	if err != nil {
		return store.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// buildPromptMessages loads the most recent bounded history (fetched newest
// first, reversed to chronological order) under a dated system instruction.
// Tool-result rows are skipped; only user/assistant turns feed the prompt.
func (a *Agent) buildPromptMessages(conversationID string) ([]chat.Message, error) {
	recent, err := a.store.RecentMessages(conversationID, a.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := []chat.Message{{Role: chat.RoleSystem, Content: a.systemPrompt()}}
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		if m.Role != chat.RoleUser && m.Role != chat.RoleAssistant {
			continue
		}
		messages = append(messages, chat.Message{Role: m.Role, Content: m.Content})
	}
	return messages, nil
}

// completeTurn runs the model phase: first call with the tool catalog, tool
// dispatch in emission order, then a final call without tools. Any provider
// failure collapses into a synthesized reply with toolCallsExecuted=false.
func (a *Agent) completeTurn(ctx context.Context, messages []chat.Message, userID string) (string, bool) {
	resp, err := a.provider.Chat(ctx, provider.ChatRequest{
		Messages: messages,
		Tools:    a.registry.Definitions(),
	})
	if err != nil {
		return fmt.Sprintf("I encountered an error processing your request: %v", err), false
	}

	if len(resp.ToolCalls) == 0 {
		if strings.TrimSpace(resp.Content) == "" {
			return "Okay.", false
		}
		return resp.Content, false
	}

	transcript := append(messages, chat.Message{
		Role:      chat.RoleAssistant,
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	})

	for i, call := range resp.ToolCalls {
		var result string
		switch {
		case i >= a.maxToolCalls:
			result = toolError("tool call limit reached")
		case !a.registry.Has(call.Function.Name):
			result = toolError(fmt.Sprintf("Tool %s not found", call.Function.Name))
		default:
			out, execErr := a.registry.Execute(ctx, call.Function.Name, userID,
				json.RawMessage(call.Function.Arguments))
			if execErr != nil {
				// Earlier calls stay committed; this one reports failure
				// back to the model and the loop moves on.
				result = toolError(execErr.Error())
			} else {
				result = out
			}
		}
		transcript = append(transcript, chat.Message{
			Role:       chat.RoleTool,
			Name:       call.Function.Name,
			ToolCallID: call.ID,
			Content:    result,
		})
	}

	final, err := a.provider.Chat(ctx, provider.ChatRequest{Messages: transcript})
	if err != nil {
		return fmt.Sprintf("I encountered an error processing your request: %v", err), false
	}
	return final.Content, true
}

func toolError(message string) string {
	data, _ := json.Marshal(map[string]any{
		"status":  "error",
		"message": message,
	})
	return string(data)
}
