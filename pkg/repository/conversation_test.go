package repository

import (
	"testing"
	"time"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

func TestConversationRepository_SaveAndGet(t *testing.T) {
	repo := NewConversationRepository(time.Minute)

	conv := domain.Conversation{ID: "c1", CurrentAgent: "Triage Agent"}
	conv.Messages = append(conv.Messages, domain.Message{Role: domain.RoleUser, Content: "hello"})
	repo.Save(conv)

	got, ok := repo.GetByID("c1")
	if !ok {
		t.Fatal("expected conversation to be found")
	}
	if got.CurrentAgent != "Triage Agent" {
		t.Errorf("CurrentAgent = %q, want %q", got.CurrentAgent, "Triage Agent")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hello" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestConversationRepository_GetMissing(t *testing.T) {
	repo := NewConversationRepository(time.Minute)

	if _, ok := repo.GetByID("nope"); ok {
		t.Error("expected missing conversation to report not found")
	}
}

func TestConversationRepository_TTLExpiry(t *testing.T) {
	repo := NewConversationRepository(10 * time.Millisecond)

	repo.Save(domain.Conversation{ID: "c1"})
	time.Sleep(20 * time.Millisecond)

	if _, ok := repo.GetByID("c1"); ok {
		t.Error("expected expired conversation to be invisible")
	}

	if n := repo.SweepExpired(); n != 1 {
		t.Errorf("SweepExpired() = %d, want 1", n)
	}
}

func TestConversationRepository_ZeroTTLNeverExpires(t *testing.T) {
	repo := NewConversationRepository(0)

	repo.Save(domain.Conversation{ID: "c1"})

	if _, ok := repo.GetByID("c1"); !ok {
		t.Error("expected conversation with zero TTL to persist")
	}
	if n := repo.SweepExpired(); n != 0 {
		t.Errorf("SweepExpired() = %d, want 0", n)
	}
}

func TestConversationRepository_Clear(t *testing.T) {
	repo := NewConversationRepository(time.Minute)

	repo.Save(domain.Conversation{ID: "c1"})
	repo.Clear("c1")

	if _, ok := repo.GetByID("c1"); ok {
		t.Error("expected cleared conversation to be gone")
	}
}
