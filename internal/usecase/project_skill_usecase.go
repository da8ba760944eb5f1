package usecase

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/domain/skill"
)

type ProjectSkillUsecase interface {
	List(ctx context.Context, projectID int64) ([]skill.Skill, error)
	Add(ctx context.Context, projectID, skillID int64) error
	Remove(ctx context.Context, projectID, skillID int64) error
}

type ProjectSkill struct {
	repo skill.ProjectSkillRepository
	deps Deps
}

func NewProjectSkillUsecase(repo skill.ProjectSkillRepository, deps Deps) *ProjectSkill {
	return &ProjectSkill{repo: repo, deps: deps.withDefaults()}
}

func (u *ProjectSkill) List(ctx context.Context, projectID int64) ([]skill.Skill, error) {
	items, err := u.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project skills: %w", err)
	}
	return items, nil
}

func (u *ProjectSkill) Add(ctx context.Context, projectID, skillID int64) error {
	if skillID <= 0 {
		return invalid("skillId is required")
	}
	if err := u.repo.Add(ctx, projectID, skillID); err != nil {
		switch {
		case errors.Is(err, skill.ErrAlreadyAssociated):
			return skill.ErrAlreadyAssociated
		case errors.Is(err, skill.ErrProjectOrSkillNotFound):
			return skill.ErrProjectOrSkillNotFound
		}
		return fmt.Errorf("add project skill: %w", err)
	}
	u.changed(ctx, ActionCreated, projectID)
	return nil
}

func (u *ProjectSkill) Remove(ctx context.Context, projectID, skillID int64) error {
	if err := u.repo.Remove(ctx, projectID, skillID); err != nil {
		if errors.Is(err, skill.ErrNotAssociated) {
			return skill.ErrNotAssociated
		}
		return fmt.Errorf("remove project skill: %w", err)
	}
	u.changed(ctx, ActionDeleted, projectID)
	return nil
}

func (u *ProjectSkill) changed(ctx context.Context, action string, projectID int64) {
	invalidate(ctx, u.deps.Cache, u.deps.Logger, cacheKeyTopSkills)
	u.deps.Notifier.Notify(ResourceProjectSkill, action, projectID)
}
