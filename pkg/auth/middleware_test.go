package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/logger"
)

func TestSubjectFromCtx_RoundTrip(t *testing.T) {
	subject := auth.Subject{ID: uuid.New(), Email: "alice@example.com"}
	ctx := auth.WithSubject(context.Background(), subject)

	got, ok := auth.SubjectFromCtx(ctx)
	if !ok {
		t.Fatal("expected a subject")
	}
	if got != subject {
		t.Errorf("got %+v, want %+v", got, subject)
	}
}

func TestSubjectFromCtx_EmptyContext(t *testing.T) {
	if _, ok := auth.SubjectFromCtx(context.Background()); ok {
		t.Fatal("expected no subject on a bare context")
	}
}

func subjectCapturingHandler(got *auth.Subject, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.SubjectFromCtx(r.Context())
		*got, *found = s, ok
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_AttachesSubjectForValidToken(t *testing.T) {
	tokens := auth.NewTokens(secret, time.Hour)
	subject := auth.Subject{ID: uuid.New(), Email: "alice@example.com"}
	signed, err := tokens.Issue(subject)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got auth.Subject
	var found bool
	h := auth.Middleware(tokens, logger.NewNop())(subjectCapturingHandler(&got, &found))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !found {
		t.Fatal("expected subject in handler context")
	}
	if got != subject {
		t.Errorf("got %+v, want %+v", got, subject)
	}
}

func TestMiddleware_ProceedsUnauthenticatedOnBadToken(t *testing.T) {
	tokens := auth.NewTokens(secret, time.Hour)

	for name, header := range map[string]string{
		"no header":       "",
		"garbage token":   "Bearer not.a.jwt",
		"empty bearer":    "Bearer ",
		"wrong signature": "Bearer eyJhbGciOiJIUzI1NiJ9.e30.bad",
	} {
		t.Run(name, func(t *testing.T) {
			var got auth.Subject
			var found bool
			h := auth.Middleware(tokens, logger.NewNop())(subjectCapturingHandler(&got, &found))

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("request must not be rejected, got status %d", rec.Code)
			}
			if found {
				t.Errorf("expected no subject, got %+v", got)
			}
		})
	}
}

func TestMiddleware_ExpiredTokenProceedsUnauthenticated(t *testing.T) {
	expired := auth.NewTokens(secret, -time.Minute)
	signed, err := expired.Issue(auth.Subject{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tokens := auth.NewTokens(secret, time.Hour)
	var found bool
	var got auth.Subject
	h := auth.Middleware(tokens, logger.NewNop())(subjectCapturingHandler(&got, &found))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expired token must not reject the request, got status %d", rec.Code)
	}
	if found {
		t.Error("expected no subject for an expired token")
	}
}
