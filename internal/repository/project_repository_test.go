package repository

import (
	"testing"

	"portfolio-api/internal/domain/project"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%java%", likePattern("java"))
	assert.Equal(t, `%100\%\_done\\%`, likePattern(`100%_done\`))
}

func TestBuildProjectWhere(t *testing.T) {
	where, args := buildProjectWhere(project.ListFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildProjectWhere(project.ListFilter{Skill: " Java "})
	assert.Contains(t, where, "s.name ILIKE $1")
	assert.Equal(t, []any{"%Java%"}, args)

	where, args = buildProjectWhere(project.ListFilter{Skill: "go", Query: "api"})
	assert.Contains(t, where, "s.name ILIKE $1")
	assert.Contains(t, where, "p.title ILIKE $2 OR p.description ILIKE $2")
	assert.Equal(t, []any{"%go%", "%api%"}, args)
}

func TestPageClause(t *testing.T) {
	clause, args := pageClause(project.ListFilter{}, 0)
	assert.Empty(t, clause)
	assert.Empty(t, args)

	clause, args = pageClause(project.ListFilter{Limit: 2, Offset: 4}, 1)
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{2, 4}, args)

	clause, args = pageClause(project.ListFilter{Offset: 2}, 0)
	assert.Equal(t, " OFFSET $1", clause)
	assert.Equal(t, []any{2}, args)

	clause, args = pageClause(project.ListFilter{Limit: 3}, 2)
	assert.Equal(t, " LIMIT $3", clause)
	assert.Equal(t, []any{3}, args)
}
