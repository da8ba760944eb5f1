package skill

import (
	"context"
	"errors"
)

var (
	ErrNotFound               = errors.New("skill not found")
	ErrNameTaken              = errors.New("skill name already exists")
	ErrAlreadyAssociated      = errors.New("skill already associated with project")
	ErrNotAssociated          = errors.New("skill not associated with project")
	ErrProjectOrSkillNotFound = errors.New("project or skill not found")
)

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Usage counts the projects tagged with a skill.
type Usage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Repository interface {
	List(ctx context.Context) ([]Skill, error)
	Top(ctx context.Context) ([]Usage, error)
	GetByID(ctx context.Context, id int64) (Skill, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, name string) (Skill, error)
	Update(ctx context.Context, id int64, name string) (Skill, error)
	Delete(ctx context.Context, id int64) error
}

type ProjectSkillRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]Skill, error)
	Add(ctx context.Context, projectID, skillID int64) error
	Remove(ctx context.Context, projectID, skillID int64) error
}
