package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain/project"
)

type ProjectLinkUsecase interface {
	List(ctx context.Context) ([]project.Link, error)
	// Get returns nil when the project has no link.
	Get(ctx context.Context, projectID int64) (*project.Link, error)
	Create(ctx context.Context, projectID int64, url string) (project.Link, error)
	Upsert(ctx context.Context, projectID int64, url string) (project.Link, error)
	Delete(ctx context.Context, projectID int64) error
}

type ProjectLink struct {
	repo project.LinkRepository
	deps Deps
}

func NewProjectLinkUsecase(repo project.LinkRepository, deps Deps) *ProjectLink {
	return &ProjectLink{repo: repo, deps: deps.withDefaults()}
}

func (u *ProjectLink) List(ctx context.Context) ([]project.Link, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list project links: %w", err)
	}
	return items, nil
}

func (u *ProjectLink) Get(ctx context.Context, projectID int64) (*project.Link, error) {
	l, err := u.repo.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrLinkNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project link: %w", err)
	}
	return &l, nil
}

func (u *ProjectLink) Create(ctx context.Context, projectID int64, url string) (project.Link, error) {
	url = strings.TrimSpace(url)
	if projectID <= 0 || url == "" {
		return project.Link{}, invalid("project_id and url are required")
	}
	l, err := u.repo.Create(ctx, projectID, url)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrLinkExists):
			return project.Link{}, project.ErrLinkExists
		case errors.Is(err, project.ErrNotFound):
			return project.Link{}, project.ErrNotFound
		}
		return project.Link{}, fmt.Errorf("create project link: %w", err)
	}
	u.deps.Notifier.Notify(ResourceProjectLink, ActionCreated, l.ID)
	return l, nil
}

func (u *ProjectLink) Upsert(ctx context.Context, projectID int64, url string) (project.Link, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return project.Link{}, invalid("url is required")
	}
	l, err := u.repo.Upsert(ctx, projectID, url)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Link{}, project.ErrNotFound
		}
		return project.Link{}, fmt.Errorf("save project link: %w", err)
	}
	u.deps.Notifier.Notify(ResourceProjectLink, ActionUpdated, l.ID)
	return l, nil
}

func (u *ProjectLink) Delete(ctx context.Context, projectID int64) error {
	if err := u.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, project.ErrLinkNotFound) {
			return project.ErrLinkNotFound
		}
		return fmt.Errorf("delete project link: %w", err)
	}
	u.deps.Notifier.Notify(ResourceProjectLink, ActionDeleted, projectID)
	return nil
}
