package service

import (
	"context"
	"errors"
	"time"

	"postboard/internal/models"
	"postboard/internal/repository"

	"github.com/google/uuid"
)

type PostService struct {
	posts repository.Posts
	now   func() time.Time
}

func NewPostService(posts repository.Posts) *PostService {
	return &PostService{posts: posts, now: time.Now}
}

// Create stores a new post owned by ownerID.
func (s *PostService) Create(ctx context.Context, ownerID string, in PostInput) (*models.Post, error) {
	p := &models.Post{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListByDateDesc(ctx)
}

// Get returns any post by id regardless of who owns it.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Authorize reports ErrPostNotFound or ErrNotOwner if callerID may not mutate
// the post.
func (s *PostService) Authorize(ctx context.Context, callerID, id string) error {
	_, err := s.owned(ctx, callerID, id)
	return err
}

// Update merges the non-empty fields of in into the post. Only the owner may
// update.
func (s *PostService) Update(ctx context.Context, callerID, id string, in PostInput) (*models.Post, error) {
	p, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Body != "" {
		p.Body = in.Body
	}

	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete permanently removes the post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// owned loads the post and checks that callerID owns it.
func (s *PostService) owned(ctx context.Context, callerID, id string) (*models.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return p, nil
}
