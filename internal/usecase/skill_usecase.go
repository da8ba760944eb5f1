package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain/skill"
)

type SkillUsecase interface {
	List(ctx context.Context) ([]skill.Skill, error)
	Top(ctx context.Context) ([]skill.Usage, error)
	Get(ctx context.Context, id int64) (skill.Skill, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, name string) (skill.Skill, error)
	Update(ctx context.Context, id int64, name string) (skill.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type Skill struct {
	repo skill.Repository
	deps Deps
}

func NewSkillUsecase(repo skill.Repository, deps Deps) *Skill {
	return &Skill{repo: repo, deps: deps.withDefaults()}
}

func (u *Skill) List(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return items, nil
}

func (u *Skill) Top(ctx context.Context) ([]skill.Usage, error) {
	return cachedRead(ctx, u.deps.Cache, u.deps.Logger, cacheKeyTopSkills, u.deps.CacheTTL, func(ctx context.Context) ([]skill.Usage, error) {
		items, err := u.repo.Top(ctx)
		if err != nil {
			return nil, fmt.Errorf("top skills: %w", err)
		}
		return items, nil
	})
}

func (u *Skill) Get(ctx context.Context, id int64) (skill.Skill, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, fmt.Errorf("get skill: %w", err)
	}
	return s, nil
}

func (u *Skill) Count(ctx context.Context) (int, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	return n, nil
}

func (u *Skill) Create(ctx context.Context, name string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, invalid("Skill name is required")
	}
	s, err := u.repo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, skill.ErrNameTaken) {
			return skill.Skill{}, skill.ErrNameTaken
		}
		return skill.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	u.changed(ctx, ActionCreated, s.ID)
	return s, nil
}

func (u *Skill) Update(ctx context.Context, id int64, name string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, invalid("Skill name is required")
	}
	s, err := u.repo.Update(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrNameTaken):
			return skill.Skill{}, skill.ErrNameTaken
		case errors.Is(err, skill.ErrNotFound):
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, fmt.Errorf("update skill: %w", err)
	}
	u.changed(ctx, ActionUpdated, s.ID)
	return s, nil
}

func (u *Skill) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			return skill.ErrNotFound
		}
		return fmt.Errorf("delete skill: %w", err)
	}
	u.changed(ctx, ActionDeleted, id)
	return nil
}

func (u *Skill) changed(ctx context.Context, action string, id int64) {
	invalidate(ctx, u.deps.Cache, u.deps.Logger, cacheKeyTopSkills)
	u.deps.Notifier.Notify(ResourceSkill, action, id)
}
