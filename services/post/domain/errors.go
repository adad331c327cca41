package domain

import "errors"

// Sentinel errors for the post domain. Use errors.Is() to check these.
var (
	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidPost indicates the post fields violate domain constraints.
	ErrInvalidPost = errors.New("invalid post")
)
