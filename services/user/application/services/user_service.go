package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/pressroom/pkg/auth"
	userdomain "github.com/ghuser/pressroom/services/user/domain"
	"github.com/ghuser/pressroom/services/user/domain/models"
	"github.com/ghuser/pressroom/services/user/domain/repositories"
)

// AuthPayload is the result of a successful signUp or login.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService handles registration and credential verification. Tokens are
// issued here so the gateway never touches the signing secret.
type UserService struct {
	repo   repositories.UserRepository
	tokens *auth.Tokens
}

// NewUserService returns a UserService wired with the given repository and
// token issuer.
func NewUserService(repo repositories.UserRepository, tokens *auth.Tokens) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// SignUp registers a new account and returns a signed token for it.
// Fails with ErrEmailTaken for duplicate emails and ErrInvalidUser for
// malformed input or mismatched password confirmation.
func (s *UserService) SignUp(ctx context.Context, name, email, password, confirmPassword string) (*AuthPayload, error) {
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", userdomain.ErrInvalidUser)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", userdomain.ErrInvalidUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := models.NewUser(name, email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", userdomain.ErrInvalidUser, err)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.payloadFor(user)
}

// Login verifies the email/password pair and returns a signed token.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, userdomain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}

	return s.payloadFor(user)
}

// Get returns the user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) payloadFor(user *models.User) (*AuthPayload, error) {
	token, err := s.tokens.Issue(auth.Subject{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}
