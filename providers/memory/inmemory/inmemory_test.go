package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/leofalp/omnichat/providers/ai"
)

func TestConversationStore_UnknownKeyIsEmpty(t *testing.T) {
	s := New()

	history, err := s.History(context.Background(), "u1", "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history == nil {
		t.Fatalf("expected non-nil empty slice for unknown key")
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}
}

func TestConversationStore_AppendAndHistory(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, "u1", "web", ai.RoleUser, "hi")

	history, err := s.History(ctx, "u1", "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 message, got %d", len(history))
	}
	if history[0].Role != ai.RoleUser || history[0].Content != "hi" {
		t.Fatalf("unexpected message: %#v", history[0])
	}
	if history[0].Timestamp.IsZero() {
		t.Fatalf("expected a fresh timestamp on append")
	}

	// mutating the returned slice must not affect internal state
	history[0].Content = "changed"
	again, _ := s.History(ctx, "u1", "web")
	if again[0].Content == "changed" {
		t.Fatalf("expected copy protection in History")
	}
}

func TestConversationStore_AppendPreservesOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, content := range []string{"A", "B", "C"} {
		s.Append(ctx, "u1", "web", ai.RoleUser, content)
	}

	history, _ := s.History(ctx, "u1", "web")
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	for i, want := range []string{"A", "B", "C"} {
		if history[i].Content != want {
			t.Errorf("position %d: expected %q, got %q", i, want, history[i].Content)
		}
	}
}

func TestConversationStore_KeysAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, "u1", "web", ai.RoleUser, "on web")
	s.Append(ctx, "u1", "telegram", ai.RoleUser, "on telegram")

	web, _ := s.History(ctx, "u1", "web")
	tg, _ := s.History(ctx, "u1", "telegram")

	if len(web) != 1 || web[0].Content != "on web" {
		t.Fatalf("unexpected web history: %#v", web)
	}
	if len(tg) != 1 || tg[0].Content != "on telegram" {
		t.Fatalf("unexpected telegram history: %#v", tg)
	}
}

func TestConversationStore_AppendExchange(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AppendExchange(ctx, "u1", "web", "question", "answer")

	history, _ := s.History(ctx, "u1", "web")
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != ai.RoleUser || history[0].Content != "question" {
		t.Errorf("unexpected user entry: %#v", history[0])
	}
	if history[1].Role != ai.RoleAssistant || history[1].Content != "answer" {
		t.Errorf("unexpected assistant entry: %#v", history[1])
	}
}

func TestConversationStore_Clear(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, "u1", "web", ai.RoleUser, "hi")
	s.Clear(ctx, "u1", "web")

	history, _ := s.History(ctx, "u1", "web")
	if len(history) != 0 {
		t.Fatalf("expected empty history after clear, got %d", len(history))
	}

	// clearing an absent key must not panic or fail
	s.Clear(ctx, "never", "seen")
}

func TestConversationStore_ConcurrentSameKey(t *testing.T) {
	s := New()
	ctx := context.Background()
	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AppendExchange(ctx, "u1", "web", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}(i)
	}
	wg.Wait()

	history, _ := s.History(ctx, "u1", "web")
	if len(history) != 2*writers {
		t.Fatalf("expected %d messages, got %d (lost or duplicated writes)", 2*writers, len(history))
	}

	// each exchange must stay adjacent: user then assistant
	for i := 0; i < len(history); i += 2 {
		if history[i].Role != ai.RoleUser || history[i+1].Role != ai.RoleAssistant {
			t.Fatalf("interleaved exchange at position %d: %v then %v", i, history[i].Role, history[i+1].Role)
		}
	}
}

func TestConversationStore_ConcurrentDistinctKeys(t *testing.T) {
	s := New()
	ctx := context.Background()
	const users = 20

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i)
			s.Append(ctx, user, "web", ai.RoleUser, "hello")
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		history, _ := s.History(ctx, fmt.Sprintf("u%d", i), "web")
		if len(history) != 1 {
			t.Fatalf("user u%d: expected 1 message, got %d", i, len(history))
		}
	}
}
