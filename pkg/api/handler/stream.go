package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/services"
)

type EventSubscriber interface {
	Subscribe(conversationID string) chan services.StreamEvent
	Unsubscribe(conversationID string, ch chan services.StreamEvent)
}

type stream struct {
	events EventSubscriber
	writer response.JSONResponseWriter
}

func NewStream(events EventSubscriber) *stream {
	return &stream{events: events}
}

// HandleStream pushes a conversation's deltas, agent events and completed
// messages to the client as named server-sent events.
func (s *stream) HandleStream(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "conversation_id is missing or empty.")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writer.WriteErrorResponse(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.events.Subscribe(conversationID)
	defer s.events.Unsubscribe(conversationID, ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()
		}
	}
}
