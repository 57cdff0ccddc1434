package repository

import (
	"context"
	"database/sql"
	"errors"

	"postboard/internal/models"
)

var (
	// ErrNotFound is returned by mutations that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the users email unique index rejects an insert.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Users persists user records. Lookups return (nil, nil) when nothing matches.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Posts persists post records. GetByID returns (nil, nil) when nothing matches.
type Posts interface {
	Create(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListByDateDesc(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users Users
	Posts Posts
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Posts: NewPostRepository(db),
	}
}
