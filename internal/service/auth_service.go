package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postboard/internal/auth"
	"postboard/internal/models"
	"postboard/internal/repository"

	"github.com/google/uuid"
)

// AuthService handles registration, login and identity lookup.
type AuthService struct {
	users  repository.Users
	tokens *auth.TokenService
	hasher *auth.Hasher
	now    func() time.Time
}

func NewAuthService(users repository.Users, tokens *auth.TokenService, hasher *auth.Hasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a user and returns a session token for it. An existing
// email yields ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrUserExists
		}
		return "", err
	}

	return s.issue(u.ID)
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.issue(u.ID)
}

// Whoami returns the user a verified token was issued for.
func (s *AuthService) Whoami(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, userID)
	}
	return u, nil
}

// ParseToken verifies token and returns the user id it carries.
func (s *AuthService) ParseToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) issue(userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("issue token for %s: %w", userID, err)
	}
	return token, nil
}
