package auth

import (
	"crypto/subtle"
	"log/slog"
)

type authenticator struct {
	tokens []string
}

func NewAuthenticator(tokens []string) *authenticator {
	slog.Info("admin token authenticator configured", "tokens", len(tokens))

	return &authenticator{
		tokens: tokens,
	}
}

func (a *authenticator) IsAuthorized(token string) bool {
	if token == "" {
		return false
	}
	for _, t := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
			return true
		}
	}
	return false
}
