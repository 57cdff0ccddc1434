package models

import "time"

// Post is a user-authored record. OwnerID is fixed at creation.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
