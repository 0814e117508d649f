package middleware

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/dkovchenko/conference-assistant/pkg/api/response"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
)

var requestCounter atomic.Int64

// RequestID tags each request context with an incrementing ID so log lines
// from one request can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.ContextWithRequestID(r.Context(), requestCounter.Add(1))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORS answers preflight requests and stamps the allow headers for origins
// on the allowlist.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && lo.Contains(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type Authenticator interface {
	IsAuthorized(token string) bool
}

// BearerAuth guards admin endpoints with a bearer token check.
func BearerAuth(auth Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	writer := response.JSONResponseWriter{}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || !auth.IsAuthorized(token) {
				writer.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next(w, r)
		}
	}
}
