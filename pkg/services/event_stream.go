package services

import "sync"

// StreamEvent is a single server-sent event for one conversation.
type StreamEvent struct {
	Name string
	Data any
}

// eventStream fans out per-conversation events to SSE subscribers. A
// conversation may have several tabs attached; each gets its own channel.
type eventStream struct {
	mu          sync.Mutex
	subscribers map[string]map[chan StreamEvent]struct{}
}

func NewEventStream() *eventStream {
	return &eventStream{
		subscribers: make(map[string]map[chan StreamEvent]struct{}),
	}
}

func (e *eventStream) Subscribe(conversationID string) chan StreamEvent {
	ch := make(chan StreamEvent, 64)

	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.subscribers[conversationID]
	if !ok {
		subs = make(map[chan StreamEvent]struct{})
		e.subscribers[conversationID] = subs
	}
	subs[ch] = struct{}{}

	return ch
}

func (e *eventStream) Unsubscribe(conversationID string, ch chan StreamEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.subscribers[conversationID]
	if !ok {
		return
	}

	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(e.subscribers, conversationID)
	}
}

// Publish delivers an event to every subscriber of the conversation. Slow
// subscribers whose buffers are full drop the event rather than block the
// chat pipeline.
func (e *eventStream) Publish(conversationID string, event StreamEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for ch := range e.subscribers[conversationID] {
		select {
		case ch <- event:
		default:
		}
	}
}
