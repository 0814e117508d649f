package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
	"github.com/dkovchenko/conference-assistant/pkg/services"
)

type ChatProvider interface {
	Respond(ctx context.Context, conversationID, accountNumber, message string) (*services.ChatResponse, error)
}

type chat struct {
	provider ChatProvider
	writer   response.JSONResponseWriter
}

func NewChat(provider ChatProvider) *chat {
	return &chat{provider: provider}
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
	AccountNumber  string `json:"account_number"`
}

func (c *chat) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Message is missing or empty.")
		return
	}

	resp, err := c.provider.Respond(r.Context(), req.ConversationID, req.AccountNumber, req.Message)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to handle chat message", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, resp)
}
