package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain/project"
)

const MaxPageLimit = 100

// ProjectListInput mirrors the query string. A nil Limit returns every
// matching row.
type ProjectListInput struct {
	Skill  string
	Query  string
	Limit  *int
	Offset int
}

type ProjectPage struct {
	Items []project.Project
	Total int
}

type ProjectInput struct {
	Title       string
	Description string
}

type ProjectUsecase interface {
	List(ctx context.Context, in ProjectListInput) (ProjectPage, error)
	Search(ctx context.Context, in ProjectListInput) (ProjectPage, error)
	Get(ctx context.Context, id int64) (project.Project, error)
	Create(ctx context.Context, in ProjectInput) (project.Project, error)
	Update(ctx context.Context, id int64, in ProjectInput) (project.Project, error)
	Delete(ctx context.Context, id int64) error
}

type Project struct {
	repo project.Repository
	deps Deps
}

func NewProjectUsecase(repo project.Repository, deps Deps) *Project {
	return &Project{repo: repo, deps: deps.withDefaults()}
}

func (in ProjectListInput) filter() (project.ListFilter, error) {
	f := project.ListFilter{
		Skill:  strings.TrimSpace(in.Skill),
		Query:  strings.TrimSpace(in.Query),
		Offset: in.Offset,
	}
	if in.Limit != nil {
		if *in.Limit < 1 || *in.Limit > MaxPageLimit {
			return project.ListFilter{}, invalid("limit must be between 1 and %d", MaxPageLimit)
		}
		f.Limit = *in.Limit
	}
	if in.Offset < 0 {
		return project.ListFilter{}, invalid("offset must not be negative")
	}
	return f, nil
}

func (u *Project) List(ctx context.Context, in ProjectListInput) (ProjectPage, error) {
	f, err := in.filter()
	if err != nil {
		return ProjectPage{}, err
	}
	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return ProjectPage{}, fmt.Errorf("list projects: %w", err)
	}
	return ProjectPage{Items: items, Total: total}, nil
}

// Search matches the query against title and description. An empty query
// is rejected.
func (u *Project) Search(ctx context.Context, in ProjectListInput) (ProjectPage, error) {
	if strings.TrimSpace(in.Query) == "" {
		return ProjectPage{}, invalid("Search query is required")
	}
	in.Skill = ""
	return u.List(ctx, in)
}

func (u *Project) Get(ctx context.Context, id int64) (project.Project, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (in ProjectInput) fields() (project.Fields, error) {
	f := project.Fields{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
	if f.Title == "" {
		return project.Fields{}, invalid("Title is required")
	}
	return f, nil
}

func (u *Project) Create(ctx context.Context, in ProjectInput) (project.Project, error) {
	f, err := in.fields()
	if err != nil {
		return project.Project{}, err
	}
	p, err := u.repo.Create(ctx, f)
	if err != nil {
		return project.Project{}, fmt.Errorf("create project: %w", err)
	}
	u.deps.Notifier.Notify(ResourceProject, ActionCreated, p.ID)
	return p, nil
}

func (u *Project) Update(ctx context.Context, id int64, in ProjectInput) (project.Project, error) {
	f, err := in.fields()
	if err != nil {
		return project.Project{}, err
	}
	p, err := u.repo.Update(ctx, id, f)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, fmt.Errorf("update project: %w", err)
	}
	u.deps.Notifier.Notify(ResourceProject, ActionUpdated, p.ID)
	return p, nil
}

func (u *Project) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	// cascades through project_skills
	invalidate(ctx, u.deps.Cache, u.deps.Logger, cacheKeyTopSkills)
	u.deps.Notifier.Notify(ResourceProject, ActionDeleted, id)
	return nil
}
