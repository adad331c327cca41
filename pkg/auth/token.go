// Package auth provides bearer-token authentication: issuing and verifying
// signed credentials and carrying the resulting Subject through contexts.
//
// Tokens are HS256 JWTs embedding the subject's id and email at issuance time.
// Verification never re-fetches the user from storage; staleness of the
// embedded fields is an accepted tradeoff.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Credential errors. Use errors.Is() to check these.
var (
	// ErrTokenMissing indicates no bearer token was supplied.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid indicates the token is malformed or its signature check failed.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnauthorized indicates an operation that requires a Subject was
	// attempted without one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the acting Subject is not the owner of the
	// entity being mutated.
	ErrForbidden = errors.New("forbidden")
)

// Subject is the authenticated identity attached to a request or session.
// Immutable for the lifetime of a request/session.
type Subject struct {
	ID    uuid.UUID
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies bearer credentials. Safe for concurrent use;
// it holds no mutable state.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens returns a Tokens signer/verifier using the given HMAC secret.
// ttl is the lifetime embedded into every issued token.
func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue signs a new bearer token for the given subject.
func (t *Tokens) Issue(subject Subject) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a bearer token string and returns the embedded Subject.
// Returns ErrTokenMissing for an empty token, ErrTokenExpired for a token
// past its expiry, and ErrTokenInvalid for everything else that fails.
func (t *Tokens) Verify(token string) (Subject, error) {
	if token == "" {
		return Subject{}, ErrTokenMissing
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Subject{}, ErrTokenExpired
		}
		return Subject{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return Subject{}, ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Subject{}, ErrTokenInvalid
	}
	return Subject{ID: id, Email: c.Email}, nil
}
