// Package domain holds the sentinel errors of the comment bounded context.
package domain

import "errors"

var (
	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrInvalidComment indicates the comment payload failed validation.
	ErrInvalidComment = errors.New("invalid comment")
)
