package agent

import (
	"fmt"
	"time"

	"aurora/internal/provider"
	"aurora/internal/store"
	"aurora/internal/tools"
)

const systemPromptTemplate = `You are Aurora, an intelligent Task Orchestrator.
Your goal is to ensure the user stays organized and productive.
Today's date is: %s

BEHAVIORAL GUIDELINES:
1. **Direct & Action-Oriented**: Do not explain what you are doing, just do it.
2. **Smart Parsing**: If the user provides a relative date like "next friday", calculate the specific date.
3. **Data Integrity**: Always ensure dates are formatted as YYYY-MM-DD before saving.
4. **Duplicate Handling**: If you find multiple tasks with the same name when deleting, ask the user for clarification using the task IDs provided in the error message.`

const (
	defaultHistoryLimit = 10
	defaultMaxToolCalls = 16
)

// ConversationStore is the slice of the persistence layer the agent consumes.
type ConversationStore interface {
	GetConversation(id string) (store.Conversation, error)
	CreateConversation(userID, title string) (store.Conversation, error)
	AppendMessage(conversationID string, m store.Message) (store.Message, error)
	RecentMessages(conversationID string, limit int) ([]store.Message, error)
}

// Agent runs one chat turn at a time: load history, call the model with the
// tool catalog, execute tool calls, call the model again for the final reply,
// persist both sides of the turn.
type Agent struct {
	provider     provider.Provider
	registry     *tools.Registry
	store        ConversationStore
	historyLimit int
	maxToolCalls int
	now          func() time.Time
}

type Options struct {
	// HistoryLimit bounds how many prior messages feed the model. Zero
	// means the default of 10.
	HistoryLimit int
	// MaxToolCalls caps tool executions within a single model turn.
	MaxToolCalls int
}

func New(p provider.Provider, registry *tools.Registry, cs ConversationStore, opts Options) *Agent {
	historyLimit := opts.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	maxToolCalls := opts.MaxToolCalls
	if maxToolCalls <= 0 {
		maxToolCalls = defaultMaxToolCalls
	}
	return &Agent{
		provider:     p,
		registry:     registry,
		store:        cs,
		historyLimit: historyLimit,
		maxToolCalls: maxToolCalls,
		now:          time.Now,
	}
}

func (a *Agent) systemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, a.now().Format("2006-01-02"))
}

// deriveTitle builds a conversation title from the first message, truncated
// to 30 runes.
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) > 30 {
		return string(runes[:30]) + "..."
	}
	if message == "" {
		return "New Chat"
	}
	return message
}
