package handler

import (
	"net/http"
	"time"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
)

type health struct {
	conferenceName string
	writer         response.JSONResponseWriter
}

func NewHealth(conferenceName string) *health {
	return &health{conferenceName: conferenceName}
}

func (h *health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{
		"status":     "ok",
		"conference": h.conferenceName,
		"time":       time.Now().Format(time.RFC3339),
	})
}
