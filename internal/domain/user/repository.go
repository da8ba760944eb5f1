package user

import (
	"context"
	"errors"

	"portfolio-api/internal/domain/profile"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repository interface {
	Create(ctx context.Context, username, passwordHash string) (User, error)
	// CreateWithProfile inserts the user and its owned profile atomically.
	CreateWithProfile(ctx context.Context, username, passwordHash string, fields profile.Fields) (User, profile.Profile, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
