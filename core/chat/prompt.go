package chat

import (
	"github.com/leofalp/omnichat/providers/ai"
	"github.com/leofalp/omnichat/providers/memory"
)

// HistoryWindow is the number of most recent history entries included in each
// outbound prompt. Older entries are dropped from the request (never from the
// store): a tail-window bounds outbound request size while preserving
// recency, at the cost of the model losing earlier context.
const HistoryWindow = 10

// BuildPrompt assembles the ordered message list for a completion request:
// the system prompt, the last [HistoryWindow] history entries
// oldest-to-newest (all of them when fewer exist), and the new user message.
func BuildPrompt(systemPrompt string, history []memory.StoredMessage, newUserText string) []ai.Message {
	tail := history
	if len(tail) > HistoryWindow {
		tail = tail[len(tail)-HistoryWindow:]
	}

	messages := make([]ai.Message, 0, len(tail)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: systemPrompt})

	for _, m := range tail {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}

	return append(messages, ai.Message{Role: ai.RoleUser, Content: newUserText})
}
