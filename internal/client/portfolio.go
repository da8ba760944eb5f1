package client

import (
	"context"
	"net/http"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
)

// Page sizes used by the portfolio page.
const (
	ProjectsPerPage = 6
	SkillsPerPage   = 3
)

// Portfolio is everything the portfolio page renders.
type Portfolio struct {
	Profile        *profile.Profile            `json:"profile"`
	Links          profile.Links               `json:"links"`
	WorkExperience []experience.WorkExperience `json:"work_experience"`
	Projects       []project.Project           `json:"projects"`
	Skills         []skill.Skill               `json:"skills"`
}

// LoadPortfolio fetches the page data. With a token the caller's own
// profile, links and work experience are loaded; without one the public
// default owner's. A missing profile leaves Profile nil.
func (c *Client) LoadPortfolio(ctx context.Context) (Portfolio, error) {
	var out Portfolio

	var (
		p   profile.Profile
		err error
	)
	if c.IsAuthenticated() {
		p, err = c.Profile(ctx)
	} else {
		p, err = c.PublicProfile(ctx)
	}
	switch {
	case err == nil:
		out.Profile = &p
	case !IsStatus(err, http.StatusNotFound):
		return Portfolio{}, err
	}

	if c.IsAuthenticated() {
		out.Links, err = c.ProfileLinks(ctx)
	} else {
		out.Links, err = c.PublicProfileLinks(ctx)
	}
	if err != nil {
		return Portfolio{}, err
	}

	if c.IsAuthenticated() {
		out.WorkExperience, err = c.WorkExperience(ctx)
	} else {
		out.WorkExperience, err = c.PublicWorkExperience(ctx)
	}
	if err != nil {
		return Portfolio{}, err
	}

	if out.Projects, err = c.Projects(ctx, ""); err != nil {
		return Portfolio{}, err
	}
	if out.Skills, err = c.Skills(ctx); err != nil {
		return Portfolio{}, err
	}
	return out, nil
}

// Paginate returns the 1-based page of items. Pages outside the range are
// empty.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage < 1 {
		return []T{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

// TotalPages is the number of pages needed for n items.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage < 1 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
