package usecase

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
)

// Ownership resolves which rows an authenticated user may touch. Every
// profile-scoped usecase goes through it.
type Ownership struct {
	profiles    profile.Repository
	experiences experience.Repository
}

func NewOwnership(profiles profile.Repository, experiences experience.Repository) *Ownership {
	return &Ownership{profiles: profiles, experiences: experiences}
}

// OwnedProfileID returns the id of the profile owned by userID, or
// profile.ErrNotFound.
func (o *Ownership) OwnedProfileID(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrUnauthorized
	}
	id, err := o.profiles.IDByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return 0, profile.ErrNotFound
		}
		return 0, fmt.Errorf("resolve owned profile: %w", err)
	}
	return id, nil
}

// CheckExperience returns the caller's profile id when the work experience
// row exists and belongs to it.
func (o *Ownership) CheckExperience(ctx context.Context, userID, experienceID int64) (int64, error) {
	owner, err := o.experiences.OwnerProfileID(ctx, experienceID)
	if err != nil {
		if errors.Is(err, experience.ErrNotFound) {
			return 0, experience.ErrNotFound
		}
		return 0, fmt.Errorf("resolve experience owner: %w", err)
	}

	profileID, err := o.OwnedProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return 0, ErrForbidden
		}
		return 0, err
	}
	if owner != profileID {
		return 0, ErrForbidden
	}
	return profileID, nil
}
