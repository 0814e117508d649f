package api

import (
	"net/http"

	"github.com/dkovchenko/conference-assistant/pkg/api/handler"
	"github.com/dkovchenko/conference-assistant/pkg/api/middleware"
	"github.com/dkovchenko/conference-assistant/pkg/api/response"
)

type Config struct {
	ConferenceName string
	AllowedOrigins []string

	Chat   handler.ChatProvider
	Events handler.EventSubscriber
	Users  handler.UserDirectory

	// Voice and Balance are optional; their routes answer 501 and are
	// omitted respectively when unset.
	Voice     handler.VoiceProvider
	Balance   handler.BalanceProvider
	AdminAuth middleware.Authenticator
}

// NewRouter assembles the HTTP surface the web client talks to.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()
	writer := response.JSONResponseWriter{}

	healthHandler := handler.NewHealth(cfg.ConferenceName)
	mux.HandleFunc("GET /{$}", healthHandler.HandleHealth)
	mux.HandleFunc("GET /healthz", healthHandler.HandleHealth)

	mux.HandleFunc("POST /chat", handler.NewChat(cfg.Chat).HandleMessage)
	mux.HandleFunc("GET /chat/stream", handler.NewStream(cfg.Events).HandleStream)
	mux.HandleFunc("GET /user/{identifier}", handler.NewUser(cfg.Users).HandleLookup)

	if cfg.Voice != nil {
		mux.HandleFunc("POST /voice", handler.NewVoice(cfg.Voice).HandleVoice)
	} else {
		mux.HandleFunc("POST /voice", func(w http.ResponseWriter, r *http.Request) {
			writer.WriteErrorResponse(w, http.StatusNotImplemented, "voice input is not configured")
		})
	}

	if cfg.Balance != nil && cfg.AdminAuth != nil {
		requireAuth := middleware.BearerAuth(cfg.AdminAuth)
		mux.HandleFunc("GET /admin/balance", requireAuth(handler.NewBalance(cfg.Balance).HandleBalance))
	}

	var h http.Handler = mux
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	h = middleware.RequestID(h)
	return h
}
