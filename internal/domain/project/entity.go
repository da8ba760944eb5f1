package project

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrLinkNotFound = errors.New("project link not found")
	ErrLinkExists   = errors.New("project link already exists")
)

type Project struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ProjectURL  *string `json:"project_url"`
}

type Fields struct {
	Title       string
	Description string
}

// ListFilter narrows a project listing. Skill matches associated skill names
// and Query matches title or description, both case-insensitive substrings.
// Limit zero means unpaged.
type ListFilter struct {
	Skill  string
	Query  string
	Limit  int
	Offset int
}

type Link struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	URL       string `json:"url"`
}

type Repository interface {
	// List returns the matching page and the unpaged total.
	List(ctx context.Context, filter ListFilter) ([]Project, int, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, fields Fields) (Project, error)
	Update(ctx context.Context, id int64, fields Fields) (Project, error)
	Delete(ctx context.Context, id int64) error
}

type LinkRepository interface {
	List(ctx context.Context) ([]Link, error)
	GetByProjectID(ctx context.Context, projectID int64) (Link, error)
	Create(ctx context.Context, projectID int64, url string) (Link, error)
	Upsert(ctx context.Context, projectID int64, url string) (Link, error)
	Delete(ctx context.Context, projectID int64) error
}
