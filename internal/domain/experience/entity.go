package experience

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("work experience not found")

type WorkExperience struct {
	ID          int64  `json:"id"`
	ProfileID   int64  `json:"profile_id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   Date   `json:"start_date"`
	EndDate     *Date  `json:"end_date"`
	Description string `json:"description"`
}

// Current reports whether the position has no end date.
func (w WorkExperience) Current() bool {
	return w.EndDate == nil
}

type Fields struct {
	Company     string
	Role        string
	StartDate   Date
	EndDate     *Date
	Description string
}

type Repository interface {
	ListByProfile(ctx context.Context, profileID int64) ([]WorkExperience, error)
	GetByID(ctx context.Context, id int64) (WorkExperience, error)
	OwnerProfileID(ctx context.Context, id int64) (int64, error)
	Create(ctx context.Context, profileID int64, fields Fields) (WorkExperience, error)
	Update(ctx context.Context, id int64, fields Fields) (WorkExperience, error)
	Delete(ctx context.Context, id int64) error
}
