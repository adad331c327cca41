// Package domain holds the sentinel errors of the user bounded context.
package domain

import "errors"

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a sign-up attempt with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials indicates a login with an unknown email or a
	// wrong password. Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUser indicates the user payload failed validation.
	ErrInvalidUser = errors.New("invalid user")
)
