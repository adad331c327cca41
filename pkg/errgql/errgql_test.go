package errgql_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/errgql"
	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	postdomain "github.com/ghuser/pressroom/services/post/domain"
	userdomain "github.com/ghuser/pressroom/services/user/domain"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var classified *errgql.Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected *errgql.Error, got %T", err)
	}
	return classified.Code()
}

func TestWrap_ClassifiesSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{auth.ErrUnauthorized, errgql.CodeUnauthenticated},
		{userdomain.ErrInvalidCredentials, errgql.CodeUnauthenticated},
		{auth.ErrForbidden, errgql.CodeForbidden},
		{postdomain.ErrPostNotFound, errgql.CodeNotFound},
		{commentdomain.ErrCommentNotFound, errgql.CodeNotFound},
		{userdomain.ErrUserNotFound, errgql.CodeNotFound},
		{postdomain.ErrInvalidPost, errgql.CodeBadUserInput},
		{commentdomain.ErrInvalidComment, errgql.CodeBadUserInput},
		{userdomain.ErrInvalidUser, errgql.CodeBadUserInput},
		{userdomain.ErrEmailTaken, errgql.CodeConflict},
	}
	for _, tc := range cases {
		if got := codeOf(t, errgql.Wrap(tc.err)); got != tc.code {
			t.Errorf("Wrap(%v): code %q, want %q", tc.err, got, tc.code)
		}
	}
}

func TestWrap_ClassifiesWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("%w: title is required", postdomain.ErrInvalidPost)
	if got := codeOf(t, errgql.Wrap(err)); got != errgql.CodeBadUserInput {
		t.Errorf("code %q, want %q", got, errgql.CodeBadUserInput)
	}
}

func TestWrap_HidesInternalDetail(t *testing.T) {
	err := errgql.Wrap(errors.New("pq: connection refused on 10.0.0.3"))
	if got := codeOf(t, err); got != errgql.CodeInternal {
		t.Fatalf("code %q, want %q", got, errgql.CodeInternal)
	}
	if err.Error() != "internal server error" {
		t.Errorf("internal detail leaked: %q", err.Error())
	}
}

func TestWrap_NilStaysNil(t *testing.T) {
	if errgql.Wrap(nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
}

func TestExtensions_CarryCode(t *testing.T) {
	err := errgql.Wrap(auth.ErrForbidden)
	var classified *errgql.Error
	if !errors.As(err, &classified) {
		t.Fatalf("expected *errgql.Error, got %T", err)
	}
	ext := classified.Extensions()
	if ext["code"] != errgql.CodeForbidden {
		t.Errorf("extensions code: %v", ext["code"])
	}
}
