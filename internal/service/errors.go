package service

import "errors"

// Domain errors for auth and post flows. Handlers map them to HTTP statuses.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityNotFound   = errors.New("token subject no longer exists")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotOwner           = errors.New("user is not the post owner")
)
