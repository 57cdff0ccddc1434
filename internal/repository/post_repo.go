package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"postboard/internal/models"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ Posts = (*PostRepository)(nil)

const (
	insertPostSQL     = `INSERT INTO posts (id, user_id, title, body, created_at) VALUES (?, ?, ?, ?, ?)`
	selectPostByIDSQL = `SELECT id, user_id, title, body, created_at FROM posts WHERE id = ?`
	// rowid breaks ties between posts created within the same instant.
	listPostsSQL  = `SELECT id, user_id, title, body, created_at FROM posts ORDER BY created_at DESC, rowid DESC`
	updatePostSQL = `UPDATE posts SET title = ?, body = ? WHERE id = ?`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// Create inserts p. ID, OwnerID and CreatedAt must already be set.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	if _, err := r.db.ExecContext(ctx, insertPostSQL, p.ID, p.OwnerID, p.Title, p.Body, p.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID fetches a post. Returns (nil, nil) if not found.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).
		Scan(&p.ID, &p.OwnerID, &p.Title, &p.Body, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// ListByDateDesc returns every post, newest first.
func (r *PostRepository) ListByDateDesc(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, listPostsSQL)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, 32)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// Update writes the title and body of p. Owner and creation time never change.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	res, err := r.db.ExecContext(ctx, updatePostSQL, p.Title, p.Body, p.ID)
	if err != nil {
		return fmt.Errorf("update post %q: %w", p.ID, err)
	}
	return requireAffected(res, p.ID)
}

// Delete permanently removes the post with id.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for post %q: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
