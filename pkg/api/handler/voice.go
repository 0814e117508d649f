package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
	"github.com/dkovchenko/conference-assistant/pkg/services"
)

const maxVoiceUploadBytes = 25 << 20

type VoiceProvider interface {
	RespondToVoice(
		ctx context.Context,
		conversationID, accountNumber string,
		audio []byte,
		extension string,
		withAudio bool,
	) (*services.VoiceResponse, error)
}

type voice struct {
	provider VoiceProvider
	writer   response.JSONResponseWriter
}

func NewVoice(provider VoiceProvider) *voice {
	return &voice{provider: provider}
}

// HandleVoice accepts a multipart form with an "audio" file and the same
// fields as a chat message. Setting speak=true asks for a spoken reply.
func (v *voice) HandleVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxVoiceUploadBytes); err != nil {
		v.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		v.writer.WriteErrorResponse(w, http.StatusBadRequest, "audio file is missing.")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		v.writer.WriteErrorResponse(w, http.StatusBadRequest, "failed to read audio file")
		return
	}

	extension := filepath.Ext(header.Filename)
	if extension == "" {
		extension = ".ogg"
	}

	resp, err := v.provider.RespondToVoice(
		r.Context(),
		r.FormValue("conversation_id"),
		r.FormValue("account_number"),
		audio,
		extension,
		r.FormValue("speak") == "true" || r.FormValue("speak") == "1",
	)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to handle voice message", logger.Err(err))
		v.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	v.writer.WriteSuccessResponse(w, resp)
}
