package auth

import "context"

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const subjectKey contextKey = "subject"

// SubjectFromCtx extracts the authenticated Subject from the request context.
// The second return is false for unauthenticated requests.
func SubjectFromCtx(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey).(Subject)
	return s, ok
}

// WithSubject returns a new context with the given Subject attached.
// Used by the authentication middleware and the websocket handshake after
// the credential has been verified.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey, s)
}
