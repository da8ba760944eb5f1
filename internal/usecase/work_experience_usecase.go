package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
)

// ExperienceInput carries raw request values; dates are parsed here.
type ExperienceInput struct {
	Company     string
	Role        string
	StartDate   string
	EndDate     *string
	Description string
}

type WorkExperienceUsecase interface {
	List(ctx context.Context, userID int64) ([]experience.WorkExperience, error)
	Get(ctx context.Context, userID, id int64) (experience.WorkExperience, error)
	Create(ctx context.Context, userID int64, in ExperienceInput) (experience.WorkExperience, error)
	Update(ctx context.Context, userID, id int64, in ExperienceInput) (experience.WorkExperience, error)
	Delete(ctx context.Context, userID, id int64) error
	PublicDefault(ctx context.Context) ([]experience.WorkExperience, error)
}

type WorkExperience struct {
	repo      experience.Repository
	profiles  profile.Repository
	ownership *Ownership

	publicOwnerID int64
	deps          Deps
}

func NewWorkExperienceUsecase(repo experience.Repository, profiles profile.Repository, ownership *Ownership, publicOwnerID int64, deps Deps) *WorkExperience {
	return &WorkExperience{
		repo:          repo,
		profiles:      profiles,
		ownership:     ownership,
		publicOwnerID: publicOwnerID,
		deps:          deps.withDefaults(),
	}
}

func (in ExperienceInput) fields() (experience.Fields, error) {
	f := experience.Fields{
		Company:     strings.TrimSpace(in.Company),
		Role:        strings.TrimSpace(in.Role),
		Description: strings.TrimSpace(in.Description),
	}
	start := strings.TrimSpace(in.StartDate)
	if f.Company == "" || f.Role == "" || start == "" {
		return experience.Fields{}, invalid("Company, role, and start_date are required")
	}

	var err error
	if f.StartDate, err = experience.ParseDate(start); err != nil {
		return experience.Fields{}, invalid("Invalid start_date")
	}
	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" {
		end, err := experience.ParseDate(*in.EndDate)
		if err != nil {
			return experience.Fields{}, invalid("Invalid end_date")
		}
		if end.Before(f.StartDate.Time) {
			return experience.Fields{}, invalid("end_date must not be before start_date")
		}
		f.EndDate = &end
	}
	return f, nil
}

func (u *WorkExperience) List(ctx context.Context, userID int64) ([]experience.WorkExperience, error) {
	profileID, err := u.ownership.OwnedProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return []experience.WorkExperience{}, nil
		}
		return nil, err
	}
	items, err := u.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list work experience: %w", err)
	}
	return items, nil
}

func (u *WorkExperience) Get(ctx context.Context, userID, id int64) (experience.WorkExperience, error) {
	if _, err := u.ownership.CheckExperience(ctx, userID, id); err != nil {
		return experience.WorkExperience{}, err
	}
	w, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, experience.ErrNotFound) {
			return experience.WorkExperience{}, experience.ErrNotFound
		}
		return experience.WorkExperience{}, fmt.Errorf("get work experience: %w", err)
	}
	return w, nil
}

// Create always attaches the row to the caller's own profile.
func (u *WorkExperience) Create(ctx context.Context, userID int64, in ExperienceInput) (experience.WorkExperience, error) {
	if userID <= 0 {
		return experience.WorkExperience{}, ErrUnauthorized
	}
	f, err := in.fields()
	if err != nil {
		return experience.WorkExperience{}, err
	}
	profileID, err := u.ownership.OwnedProfileID(ctx, userID)
	if err != nil {
		return experience.WorkExperience{}, err
	}

	w, err := u.repo.Create(ctx, profileID, f)
	if err != nil {
		return experience.WorkExperience{}, fmt.Errorf("create work experience: %w", err)
	}
	u.changed(ctx, ActionCreated, w.ID)
	return w, nil
}

func (u *WorkExperience) Update(ctx context.Context, userID, id int64, in ExperienceInput) (experience.WorkExperience, error) {
	if _, err := u.ownership.CheckExperience(ctx, userID, id); err != nil {
		return experience.WorkExperience{}, err
	}
	f, err := in.fields()
	if err != nil {
		return experience.WorkExperience{}, err
	}

	w, err := u.repo.Update(ctx, id, f)
	if err != nil {
		if errors.Is(err, experience.ErrNotFound) {
			return experience.WorkExperience{}, experience.ErrNotFound
		}
		return experience.WorkExperience{}, fmt.Errorf("update work experience: %w", err)
	}
	u.changed(ctx, ActionUpdated, w.ID)
	return w, nil
}

func (u *WorkExperience) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.ownership.CheckExperience(ctx, userID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, experience.ErrNotFound) {
			return experience.ErrNotFound
		}
		return fmt.Errorf("delete work experience: %w", err)
	}
	u.changed(ctx, ActionDeleted, id)
	return nil
}

func (u *WorkExperience) PublicDefault(ctx context.Context) ([]experience.WorkExperience, error) {
	return cachedRead(ctx, u.deps.Cache, u.deps.Logger, cacheKeyPublicExperience, u.deps.CacheTTL, func(ctx context.Context) ([]experience.WorkExperience, error) {
		profileID, err := u.profiles.IDByUserID(ctx, u.publicOwnerID)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return []experience.WorkExperience{}, nil
			}
			return nil, fmt.Errorf("resolve public profile: %w", err)
		}
		items, err := u.repo.ListByProfile(ctx, profileID)
		if err != nil {
			return nil, fmt.Errorf("list public work experience: %w", err)
		}
		return items, nil
	})
}

func (u *WorkExperience) changed(ctx context.Context, action string, id int64) {
	invalidate(ctx, u.deps.Cache, u.deps.Logger, cacheKeyPublicExperience)
	u.deps.Notifier.Notify(ResourceWorkExperience, action, id)
}
