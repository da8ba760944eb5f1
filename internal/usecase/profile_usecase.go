package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain/profile"
)

type ProfileInput struct {
	Name      string
	Email     string
	Education string
}

type LinksInput struct {
	GitHub    string
	LinkedIn  string
	Portfolio string
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID int64) (profile.Profile, error)
	Create(ctx context.Context, userID int64, in ProfileInput) (profile.Profile, error)
	Update(ctx context.Context, userID int64, in ProfileInput) (profile.Profile, error)
	PublicDefault(ctx context.Context) (profile.Profile, error)

	Links(ctx context.Context, userID int64) (profile.Links, error)
	SaveLinks(ctx context.Context, userID int64, in LinksInput) (profile.Links, bool, error)
	PublicLinks(ctx context.Context) (profile.Links, error)
}

type Profile struct {
	profiles  profile.Repository
	links     profile.LinksRepository
	ownership *Ownership

	publicOwnerID int64
	deps          Deps
}

func NewProfileUsecase(profiles profile.Repository, links profile.LinksRepository, ownership *Ownership, publicOwnerID int64, deps Deps) *Profile {
	return &Profile{
		profiles:      profiles,
		links:         links,
		ownership:     ownership,
		publicOwnerID: publicOwnerID,
		deps:          deps.withDefaults(),
	}
}

func (in ProfileInput) fields() (profile.Fields, error) {
	f := profile.Fields{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Education: strings.TrimSpace(in.Education),
	}
	if f.Name == "" || f.Email == "" {
		return profile.Fields{}, invalid("Name and email are required")
	}
	return f, nil
}

func (u *Profile) Get(ctx context.Context, userID int64) (profile.Profile, error) {
	if userID <= 0 {
		return profile.Profile{}, ErrUnauthorized
	}
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (u *Profile) Create(ctx context.Context, userID int64, in ProfileInput) (profile.Profile, error) {
	if userID <= 0 {
		return profile.Profile{}, ErrUnauthorized
	}
	f, err := in.fields()
	if err != nil {
		return profile.Profile{}, err
	}

	p, err := u.profiles.Create(ctx, userID, f)
	if err != nil {
		if errors.Is(err, profile.ErrAlreadyExists) {
			return profile.Profile{}, profile.ErrAlreadyExists
		}
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	u.changed(ctx, ResourceProfile, ActionCreated, p.ID)
	return p, nil
}

func (u *Profile) Update(ctx context.Context, userID int64, in ProfileInput) (profile.Profile, error) {
	f, err := in.fields()
	if err != nil {
		return profile.Profile{}, err
	}
	profileID, err := u.ownership.OwnedProfileID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	p, err := u.profiles.Update(ctx, profileID, f)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	u.changed(ctx, ResourceProfile, ActionUpdated, p.ID)
	return p, nil
}

func (u *Profile) PublicDefault(ctx context.Context) (profile.Profile, error) {
	return cachedRead(ctx, u.deps.Cache, u.deps.Logger, cacheKeyPublicProfile, u.deps.CacheTTL, func(ctx context.Context) (profile.Profile, error) {
		p, err := u.profiles.GetByUserID(ctx, u.publicOwnerID)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return profile.Profile{}, profile.ErrNotFound
			}
			return profile.Profile{}, fmt.Errorf("get public profile: %w", err)
		}
		return p, nil
	})
}

// Links returns the caller's links, or the empty links object when none
// have been saved.
func (u *Profile) Links(ctx context.Context, userID int64) (profile.Links, error) {
	profileID, err := u.ownership.OwnedProfileID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Links{}, nil
		}
		return profile.Links{}, err
	}
	return u.linksFor(ctx, profileID)
}

// SaveLinks upserts the caller's links and reports whether a row was
// inserted.
func (u *Profile) SaveLinks(ctx context.Context, userID int64, in LinksInput) (profile.Links, bool, error) {
	profileID, err := u.ownership.OwnedProfileID(ctx, userID)
	if err != nil {
		return profile.Links{}, false, err
	}

	l, created, err := u.links.Upsert(ctx, profileID, profile.LinkFields{
		GitHub:    strings.TrimSpace(in.GitHub),
		LinkedIn:  strings.TrimSpace(in.LinkedIn),
		Portfolio: strings.TrimSpace(in.Portfolio),
	})
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Links{}, false, profile.ErrNotFound
		}
		return profile.Links{}, false, fmt.Errorf("save profile links: %w", err)
	}

	action := ActionUpdated
	if created {
		action = ActionCreated
	}
	u.changed(ctx, ResourceProfileLinks, action, l.ID)
	return l, created, nil
}

func (u *Profile) PublicLinks(ctx context.Context) (profile.Links, error) {
	return cachedRead(ctx, u.deps.Cache, u.deps.Logger, cacheKeyPublicLinks, u.deps.CacheTTL, func(ctx context.Context) (profile.Links, error) {
		profileID, err := u.profiles.IDByUserID(ctx, u.publicOwnerID)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return profile.Links{}, nil
			}
			return profile.Links{}, fmt.Errorf("resolve public profile: %w", err)
		}
		return u.linksFor(ctx, profileID)
	})
}

func (u *Profile) linksFor(ctx context.Context, profileID int64) (profile.Links, error) {
	l, err := u.links.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Links{}, nil
		}
		return profile.Links{}, fmt.Errorf("get profile links: %w", err)
	}
	return l, nil
}

func (u *Profile) changed(ctx context.Context, resource, action string, id int64) {
	invalidate(ctx, u.deps.Cache, u.deps.Logger, cacheKeyPublicPattern)
	u.deps.Notifier.Notify(resource, action, id)
}
