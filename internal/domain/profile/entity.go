package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

type Profile struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education"`
}

type Fields struct {
	Name      string
	Email     string
	Education string
}

// Links holds the social URLs of a profile. The zero value renders as the
// empty links object.
type Links struct {
	ID        int64  `json:"id,omitempty"`
	ProfileID int64  `json:"profile_id,omitempty"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

type LinkFields struct {
	GitHub    string
	LinkedIn  string
	Portfolio string
}

type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (Profile, error)
	IDByUserID(ctx context.Context, userID int64) (int64, error)
	Create(ctx context.Context, userID int64, fields Fields) (Profile, error)
	Update(ctx context.Context, profileID int64, fields Fields) (Profile, error)
}

type LinksRepository interface {
	GetByProfileID(ctx context.Context, profileID int64) (Links, error)
	// Upsert reports created=true when a new row was inserted.
	Upsert(ctx context.Context, profileID int64, fields LinkFields) (links Links, created bool, err error)
}
