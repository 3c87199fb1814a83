package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"socialnotes/auth"
	"socialnotes/respond"
)

type contextKey string

// UsernameKey holds the authenticated username in the request context.
const UsernameKey contextKey = "username"

// Authenticator verifies bearer tokens and stakes the claimed username
// into the request context. It only establishes who the caller claims to
// be; whether that identity still maps to a user record is decided by the
// authorization guards.
type Authenticator struct {
	tokens *auth.TokenManager
	log    zerolog.Logger
}

func NewAuthenticator(tokens *auth.TokenManager, log zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, log: log}
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight carries no credentials.
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Authorization header is required")
			return
		}

		token := extractToken(authHeader)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "Unauthorized", "No bearer token provided")
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized", "The token has expired")
				return
			}
			a.log.Debug().Err(err).Msg("token validation failed")
			respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the token out of a "Bearer <token>" header.
func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, "Bearer ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UsernameFromContext returns the authenticated username, or "" when the
// request never passed the authenticator.
func UsernameFromContext(r *http.Request) string {
	username, ok := r.Context().Value(UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}
