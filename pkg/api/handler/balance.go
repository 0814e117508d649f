package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
)

type BalanceProvider interface {
	GetBalanceMessage(ctx context.Context) (string, error)
}

type balance struct {
	provider BalanceProvider
	writer   response.JSONResponseWriter
}

func NewBalance(provider BalanceProvider) *balance {
	return &balance{provider: provider}
}

func (b *balance) HandleBalance(w http.ResponseWriter, r *http.Request) {
	msg, err := b.provider.GetBalanceMessage(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to fetch balance", logger.Err(err))
		b.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	b.writer.WriteSuccessResponse(w, map[string]string{"balance": msg})
}
