// Package errgql maps domain sentinel errors onto GraphQL error responses.
//
// Resolvers return plain domain errors; Wrap classifies them into an Error
// carrying a machine-readable code that graphql-go serializes into the
// response's extensions. Unrecognized errors are treated as internal and
// their messages are hidden from clients.
package errgql

import (
	"errors"

	"github.com/ghuser/pressroom/pkg/auth"
	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	postdomain "github.com/ghuser/pressroom/services/post/domain"
	userdomain "github.com/ghuser/pressroom/services/user/domain"
)

// Error codes surfaced in the extensions block of a GraphQL error.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is a classified resolver error. It implements the ExtendedError
// interface graphql-go looks for when formatting errors, so the code travels
// to the client without custom response plumbing.
type Error struct {
	err  error
	code string
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

// Extensions satisfies graphql-go's gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// Code returns the classification of this error.
func (e *Error) Code() string { return e.code }

// New returns an Error with an explicit code.
func New(err error, code string) *Error {
	return &Error{err: err, code: code}
}

// Wrap classifies err by its sentinel and returns an *Error. A nil err
// returns nil. Errors outside the domain taxonomy become CodeInternal with
// a generic message.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, userdomain.ErrInvalidCredentials):
		return &Error{err: err, code: CodeUnauthenticated}
	case errors.Is(err, auth.ErrForbidden):
		return &Error{err: err, code: CodeForbidden}
	case errors.Is(err, postdomain.ErrPostNotFound),
		errors.Is(err, commentdomain.ErrCommentNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		return &Error{err: err, code: CodeNotFound}
	case errors.Is(err, postdomain.ErrInvalidPost),
		errors.Is(err, commentdomain.ErrInvalidComment),
		errors.Is(err, userdomain.ErrInvalidUser):
		return &Error{err: err, code: CodeBadUserInput}
	case errors.Is(err, userdomain.ErrEmailTaken):
		return &Error{err: err, code: CodeConflict}
	default:
		return &Error{err: errors.New("internal server error"), code: CodeInternal}
	}
}
