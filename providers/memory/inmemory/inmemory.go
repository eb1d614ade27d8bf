package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/leofalp/omnichat/providers/ai"
	"github.com/leofalp/omnichat/providers/memory"
)

// ConversationStore is a concurrency-safe in-memory store of per-conversation
// message histories. A store-level RWMutex guards only the conversation map;
// each conversation carries its own mutex, so writers to different
// conversations never block each other.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*conversation
}

// conversation holds one ordered history. Its mutex serializes appends and
// snapshot reads for that key only.
type conversation struct {
	mu       sync.Mutex
	messages []memory.StoredMessage
}

// New returns a new, empty [ConversationStore] ready for immediate use.
func New() *ConversationStore {
	return &ConversationStore{
		conversations: map[string]*conversation{},
	}
}

// Ensure ConversationStore implements memory.Store at compile time.
var _ memory.Store = (*ConversationStore)(nil)

// conversationKey combines user id and channel into the map key. The format
// matches the reference implementation; uniqueness is per (user, channel)
// pair.
func conversationKey(userID, channel string) string {
	return userID + "_" + channel
}

// lookup returns the conversation for the key, or nil when absent.
func (s *ConversationStore) lookup(userID, channel string) *conversation {
	s.mu.RLock()
	conv := s.conversations[conversationKey(userID, channel)]
	s.mu.RUnlock()
	return conv
}

// getOrCreate returns the conversation for the key, creating it lazily.
func (s *ConversationStore) getOrCreate(userID, channel string) *conversation {
	key := conversationKey(userID, channel)

	s.mu.RLock()
	conv, ok := s.conversations[key]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check after acquiring the write lock.
	if conv, ok = s.conversations[key]; ok {
		return conv
	}

	conv = &conversation{}
	s.conversations[key] = conv
	return conv
}

// History returns a copy of all messages for the conversation to avoid
// external mutation of internal state. Unknown conversations yield an empty,
// non-nil slice. The context parameter is accepted for interface compliance
// but is not used by the in-memory implementation. The returned error is
// always nil.
func (s *ConversationStore) History(_ context.Context, userID, channel string) ([]memory.StoredMessage, error) {
	conv := s.lookup(userID, channel)
	if conv == nil {
		return []memory.StoredMessage{}, nil
	}

	conv.mu.Lock()
	out := make([]memory.StoredMessage, len(conv.messages))
	copy(out, conv.messages)
	conv.mu.Unlock()
	return out, nil
}

// Append stores one message with a fresh timestamp at the end of the
// conversation's history, creating the conversation if absent.
func (s *ConversationStore) Append(_ context.Context, userID, channel string, role ai.MessageRole, content string) {
	conv := s.getOrCreate(userID, channel)

	conv.mu.Lock()
	conv.messages = append(conv.messages, memory.StoredMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	conv.mu.Unlock()
}

// AppendExchange records a completed turn: the user message followed by the
// assistant reply, appended under one lock acquisition so concurrent writers
// cannot interleave between the two entries.
func (s *ConversationStore) AppendExchange(_ context.Context, userID, channel, userText, assistantText string) {
	conv := s.getOrCreate(userID, channel)
	now := time.Now().UTC()

	conv.mu.Lock()
	conv.messages = append(conv.messages,
		memory.StoredMessage{Role: ai.RoleUser, Content: userText, Timestamp: now},
		memory.StoredMessage{Role: ai.RoleAssistant, Content: assistantText, Timestamp: now},
	)
	conv.mu.Unlock()
}

// Clear removes the conversation entirely; a later History call behaves as if
// the conversation never existed. Clearing an unknown conversation is a
// no-op.
func (s *ConversationStore) Clear(_ context.Context, userID, channel string) {
	s.mu.Lock()
	delete(s.conversations, conversationKey(userID, channel))
	s.mu.Unlock()
}
