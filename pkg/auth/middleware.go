package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghuser/pressroom/pkg/logger"
)

// BearerToken extracts the bearer token from an Authorization header value.
// Returns "" when the header is absent or carries no token.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// Middleware verifies the request's bearer token and, on success, attaches
// the Subject to the request context. Verification failures — missing,
// malformed, or expired tokens — do NOT reject the request: it proceeds with
// no Subject, reads stay open, and mutations that need a Subject fail with
// ErrUnauthorized at the service layer. Streaming connections are stricter;
// see the gateway session handshake.
func Middleware(tokens *Tokens, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			subject, err := tokens.Verify(token)
			if err != nil {
				if !errors.Is(err, ErrTokenMissing) {
					log.DebugContext(r.Context(), "bearer token rejected, proceeding unauthenticated", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}
