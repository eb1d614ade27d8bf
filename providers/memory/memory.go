package memory

import (
	"context"
	"time"

	"github.com/leofalp/omnichat/providers/ai"
)

// StoredMessage is a single history entry. Entries are immutable once
// appended; Timestamp serializes as RFC 3339 in JSON output.
type StoredMessage struct {
	Role      ai.MessageRole `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
}

// Store manages ordered per-conversation message histories. Implementations
// must be safe for concurrent use: appends to the same conversation must
// serialize, while operations on different conversations must not contend
// with each other.
type Store interface {
	// History returns a copy of the conversation's messages in append order.
	// A conversation that was never written to yields an empty slice, not an
	// error.
	History(ctx context.Context, userID, channel string) ([]StoredMessage, error)

	// Append adds one message with a fresh timestamp to the end of the
	// conversation, creating it if absent.
	Append(ctx context.Context, userID, channel string, role ai.MessageRole, content string)

	// AppendExchange appends the user message followed by the assistant reply
	// in a single critical section, so a completed turn is recorded without
	// another writer's messages interleaving between the two.
	AppendExchange(ctx context.Context, userID, channel, userText, assistantText string)

	// Clear removes the conversation entirely. Clearing an absent
	// conversation is a no-op.
	Clear(ctx context.Context, userID, channel string)
}
