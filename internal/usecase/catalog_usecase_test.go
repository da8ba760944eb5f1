package usecase

import (
	"context"
	"testing"

	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestSkill_DuplicateNameLeavesCountUnchanged(t *testing.T) {
	store := memory.New()
	uc := NewSkillUsecase(store.Skills(), Deps{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "Go")
	require.NoError(t, err)

	_, err = uc.Create(ctx, "Go")
	assert.ErrorIs(t, err, skill.ErrNameTaken)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSkill_UpdateConflictsAndMissing(t *testing.T) {
	store := memory.New()
	uc := NewSkillUsecase(store.Skills(), Deps{})
	ctx := context.Background()

	goSkill, err := uc.Create(ctx, "Go")
	require.NoError(t, err)
	_, err = uc.Create(ctx, "Rust")
	require.NoError(t, err)

	_, err = uc.Update(ctx, goSkill.ID, "Rust")
	assert.ErrorIs(t, err, skill.ErrNameTaken)

	_, err = uc.Update(ctx, 999, "Zig")
	assert.ErrorIs(t, err, skill.ErrNotFound)

	_, err = uc.Create(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(ctx, 999), skill.ErrNotFound)
}

func TestSkill_TopCachedUntilAssociationChanges(t *testing.T) {
	store := memory.New()
	cache := newMapCache()
	deps := Deps{Cache: cache}
	skills := NewSkillUsecase(store.Skills(), deps)
	projects := NewProjectUsecase(store.Projects(), deps)
	pairs := NewProjectSkillUsecase(store.ProjectSkills(), deps)
	ctx := context.Background()

	goSkill, err := skills.Create(ctx, "Go")
	require.NoError(t, err)
	p, err := projects.Create(ctx, ProjectInput{Title: "API"})
	require.NoError(t, err)

	top, err := skills.Top(ctx)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.True(t, cache.has(cacheKeyTopSkills))

	require.NoError(t, pairs.Add(ctx, p.ID, goSkill.ID))
	assert.False(t, cache.has(cacheKeyTopSkills))

	top, err = skills.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, []skill.Usage{{Name: "Go", Count: 1}}, top)
}

func TestProjectSkill_PairRules(t *testing.T) {
	store := memory.New()
	skills := NewSkillUsecase(store.Skills(), Deps{})
	projects := NewProjectUsecase(store.Projects(), Deps{})
	pairs := NewProjectSkillUsecase(store.ProjectSkills(), Deps{})
	ctx := context.Background()

	s, err := skills.Create(ctx, "Go")
	require.NoError(t, err)
	p, err := projects.Create(ctx, ProjectInput{Title: "API"})
	require.NoError(t, err)

	require.NoError(t, pairs.Add(ctx, p.ID, s.ID))
	assert.ErrorIs(t, pairs.Add(ctx, p.ID, s.ID), skill.ErrAlreadyAssociated)
	assert.ErrorIs(t, pairs.Add(ctx, p.ID+100, s.ID), skill.ErrProjectOrSkillNotFound)
	assert.ErrorIs(t, pairs.Add(ctx, p.ID, 0), ErrInvalidInput)

	list, err := pairs.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []skill.Skill{s}, list)

	require.NoError(t, pairs.Remove(ctx, p.ID, s.ID))
	assert.ErrorIs(t, pairs.Remove(ctx, p.ID, s.ID), skill.ErrNotAssociated)
}

func TestProject_ListFiltersBySkill(t *testing.T) {
	store := memory.New()
	skills := NewSkillUsecase(store.Skills(), Deps{})
	projects := NewProjectUsecase(store.Projects(), Deps{})
	pairs := NewProjectSkillUsecase(store.ProjectSkills(), Deps{})
	ctx := context.Background()

	react, err := skills.Create(ctx, "React")
	require.NoError(t, err)
	goSkill, err := skills.Create(ctx, "Go")
	require.NoError(t, err)

	web, err := projects.Create(ctx, ProjectInput{Title: "Web"})
	require.NoError(t, err)
	api, err := projects.Create(ctx, ProjectInput{Title: "API"})
	require.NoError(t, err)
	require.NoError(t, pairs.Add(ctx, web.ID, react.ID))
	require.NoError(t, pairs.Add(ctx, api.ID, goSkill.ID))

	page, err := projects.List(ctx, ProjectListInput{Skill: "rea"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, web.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.Total)
}

func TestProject_Paging(t *testing.T) {
	store := memory.New()
	uc := NewProjectUsecase(store.Projects(), Deps{})
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		_, err := uc.Create(ctx, ProjectInput{Title: title})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, ProjectListInput{Limit: intPtr(2), Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Title)

	page, err = uc.List(ctx, ProjectListInput{Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "d", page.Items[0].Title)

	page, err = uc.List(ctx, ProjectListInput{Offset: 9})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Empty(t, page.Items)

	for _, bad := range []ProjectListInput{
		{Limit: intPtr(0)},
		{Limit: intPtr(MaxPageLimit + 1)},
		{Limit: intPtr(5), Offset: -1},
	} {
		_, err := uc.List(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestProject_Search(t *testing.T) {
	store := memory.New()
	uc := NewProjectUsecase(store.Projects(), Deps{})
	ctx := context.Background()

	_, err := uc.Create(ctx, ProjectInput{Title: "Trading System", Description: "stock simulation"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, ProjectInput{Title: "Billmate", Description: "bills"})
	require.NoError(t, err)

	page, err := uc.Search(ctx, ProjectListInput{Query: "STOCK"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Trading System", page.Items[0].Title)

	_, err = uc.Search(ctx, ProjectListInput{Query: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProject_CRUD(t *testing.T) {
	store := memory.New()
	notifier := &recordingNotifier{}
	uc := NewProjectUsecase(store.Projects(), Deps{Notifier: notifier})
	links := NewProjectLinkUsecase(store.ProjectLinks(), Deps{Notifier: notifier})
	ctx := context.Background()

	_, err := uc.Create(ctx, ProjectInput{Description: "no title"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err := uc.Create(ctx, ProjectInput{Title: "API"})
	require.NoError(t, err)
	assert.Nil(t, p.ProjectURL)

	_, err = links.Create(ctx, p.ID, "https://api.example.com")
	require.NoError(t, err)

	got, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProjectURL)
	assert.Equal(t, "https://api.example.com", *got.ProjectURL)

	_, err = uc.Update(ctx, p.ID+100, ProjectInput{Title: "x"})
	assert.ErrorIs(t, err, project.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.Equal(t, event{ResourceProject, ActionDeleted, p.ID}, notifier.last())
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), project.ErrNotFound)

	l, err := links.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestProjectLink_Rules(t *testing.T) {
	store := memory.New()
	projects := NewProjectUsecase(store.Projects(), Deps{})
	uc := NewProjectLinkUsecase(store.ProjectLinks(), Deps{})
	ctx := context.Background()

	p, err := projects.Create(ctx, ProjectInput{Title: "API"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, p.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(ctx, p.ID+100, "https://x")
	assert.ErrorIs(t, err, project.ErrNotFound)

	_, err = uc.Create(ctx, p.ID, "https://one")
	require.NoError(t, err)
	_, err = uc.Create(ctx, p.ID, "https://two")
	assert.ErrorIs(t, err, project.ErrLinkExists)

	l, err := uc.Upsert(ctx, p.ID, "https://two")
	require.NoError(t, err)
	assert.Equal(t, "https://two", l.URL)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), project.ErrLinkNotFound)
}
