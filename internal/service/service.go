package service

import (
	"context"

	"postboard/internal/auth"
	"postboard/internal/models"
	"postboard/internal/repository"
)

// Authorization covers credential checks and session tokens.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Whoami(ctx context.Context, userID string) (*models.User, error)
	ParseToken(token string) (string, error)
}

// Posts exposes post CRUD. Mutations are allowed only for the post owner.
type Posts interface {
	Create(ctx context.Context, ownerID string, in PostInput) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Authorize(ctx context.Context, callerID, id string) error
	Update(ctx context.Context, callerID, id string, in PostInput) (*models.Post, error)
	Delete(ctx context.Context, callerID, id string) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Posts
}

func NewService(repos *repository.Repository, tokens *auth.TokenService, hasher *auth.Hasher) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens, hasher),
		Posts:         NewPostService(repos.Posts),
	}
}
