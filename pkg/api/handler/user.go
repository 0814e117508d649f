package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/domain"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
)

type UserDirectory interface {
	GetByRegistrationID(ctx context.Context, registrationID string) (*domain.User, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error)
}

type user struct {
	directory UserDirectory
	writer    response.JSONResponseWriter
}

func NewUser(directory UserDirectory) *user {
	return &user{directory: directory}
}

// HandleLookup resolves an identifier as a registration ID first and falls
// back to treating it as a scanned badge QR code.
func (u *user) HandleLookup(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")
	if identifier == "" {
		u.writer.WriteErrorResponse(w, http.StatusBadRequest, "identifier is missing or empty.")
		return
	}

	ctx := r.Context()

	found, err := u.directory.GetByRegistrationID(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		found, err = u.directory.GetByQRCode(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.writer.WriteErrorResponse(w, http.StatusNotFound, "user not found")
			return
		}
		slog.ErrorContext(ctx, "Failed to look up user", "identifier", identifier, logger.Err(err))
		u.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	u.writer.WriteSuccessResponse(w, found)
}
