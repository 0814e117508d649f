package repository

import (
	"sync"
	"time"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type conversationEntry struct {
	conversation domain.Conversation
	lastUpdate   time.Time
}

// conversationRepository keeps live conversations in memory. Entries older
// than the TTL are invisible to reads and reclaimed by the janitor.
type conversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]conversationEntry
	ttl           time.Duration
}

func NewConversationRepository(ttl time.Duration) *conversationRepository {
	return &conversationRepository{
		conversations: make(map[string]conversationEntry),
		ttl:           ttl,
	}
}

func (c *conversationRepository) Save(conversation domain.Conversation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conversations[conversation.ID] = conversationEntry{
		conversation: conversation,
		lastUpdate:   time.Now(),
	}
}

func (c *conversationRepository) GetByID(id string) (domain.Conversation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.conversations[id]
	if !ok {
		return domain.Conversation{}, false
	}

	if c.isExpired(entry.lastUpdate) {
		return domain.Conversation{}, false
	}

	return entry.conversation, true
}

func (c *conversationRepository) Clear(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.conversations, id)
}

// SweepExpired removes conversations past their TTL and reports how many
// were reclaimed.
func (c *conversationRepository) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var swept int
	for id, entry := range c.conversations {
		if c.isExpired(entry.lastUpdate) {
			delete(c.conversations, id)
			swept++
		}
	}
	return swept
}

func (c *conversationRepository) isExpired(lastUpdate time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return time.Since(lastUpdate) > c.ttl
}
