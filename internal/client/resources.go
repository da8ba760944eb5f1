package client

import (
	"context"
	"net/http"
	"strconv"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
)

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

type ProfileInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education"`
}

func (c *Client) Profile(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	_, err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &p)
	return p, err
}

func (c *Client) PublicProfile(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	_, err := c.do(ctx, http.MethodGet, "/profile/public/default", nil, nil, &p)
	return p, err
}

func (c *Client) CreateProfile(ctx context.Context, in ProfileInput) (profile.Profile, error) {
	var p profile.Profile
	_, err := c.do(ctx, http.MethodPost, "/profile", nil, in, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (profile.Profile, error) {
	var p profile.Profile
	_, err := c.do(ctx, http.MethodPut, "/profile", nil, in, &p)
	return p, err
}

type LinksInput struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

func (c *Client) ProfileLinks(ctx context.Context) (profile.Links, error) {
	var l profile.Links
	_, err := c.do(ctx, http.MethodGet, "/profile-links", nil, nil, &l)
	return l, err
}

func (c *Client) PublicProfileLinks(ctx context.Context) (profile.Links, error) {
	var l profile.Links
	_, err := c.do(ctx, http.MethodGet, "/profile-links/public/default", nil, nil, &l)
	return l, err
}

func (c *Client) SaveProfileLinks(ctx context.Context, in LinksInput) (profile.Links, error) {
	var l profile.Links
	_, err := c.do(ctx, http.MethodPut, "/profile-links", nil, in, &l)
	return l, err
}

type WorkExperienceInput struct {
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

func (c *Client) WorkExperience(ctx context.Context) ([]experience.WorkExperience, error) {
	var out []experience.WorkExperience
	_, err := c.do(ctx, http.MethodGet, "/work-experience", nil, nil, &out)
	return out, err
}

func (c *Client) PublicWorkExperience(ctx context.Context) ([]experience.WorkExperience, error) {
	var out []experience.WorkExperience
	_, err := c.do(ctx, http.MethodGet, "/work-experience/public/default", nil, nil, &out)
	return out, err
}

func (c *Client) CreateWorkExperience(ctx context.Context, in WorkExperienceInput) (experience.WorkExperience, error) {
	var w experience.WorkExperience
	_, err := c.do(ctx, http.MethodPost, "/work-experience", nil, in, &w)
	return w, err
}

func (c *Client) UpdateWorkExperience(ctx context.Context, id int64, in WorkExperienceInput) (experience.WorkExperience, error) {
	var w experience.WorkExperience
	_, err := c.do(ctx, http.MethodPut, idPath("/work-experience", id), nil, in, &w)
	return w, err
}

func (c *Client) DeleteWorkExperience(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/work-experience", id), nil, nil, nil)
	return err
}

type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectQuery filters a project listing. A zero Limit returns every match.
type ProjectQuery struct {
	Skill  string
	Limit  int
	Offset int
}

func (q ProjectQuery) params() map[string]string {
	p := map[string]string{}
	if q.Skill != "" {
		p["skill"] = q.Skill
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
		p["offset"] = strconv.Itoa(q.Offset)
	}
	return p
}

// ProjectPage is one server-side page and the total number of matches.
type ProjectPage struct {
	Items []project.Project
	Total int
}

func (c *Client) Projects(ctx context.Context, skillFilter string) ([]project.Project, error) {
	page, err := c.ListProjectsPage(ctx, ProjectQuery{Skill: skillFilter})
	return page.Items, err
}

func (c *Client) ListProjectsPage(ctx context.Context, q ProjectQuery) (ProjectPage, error) {
	var items []project.Project
	total, err := c.do(ctx, http.MethodGet, "/projects", q.params(), nil, &items)
	if err != nil {
		return ProjectPage{}, err
	}
	if total < 0 {
		total = len(items)
	}
	return ProjectPage{Items: items, Total: total}, nil
}

func (c *Client) SearchProjects(ctx context.Context, query string, limit, offset int) (ProjectPage, error) {
	params := ProjectQuery{Limit: limit, Offset: offset}.params()
	params["q"] = query

	var items []project.Project
	total, err := c.do(ctx, http.MethodGet, "/search", params, nil, &items)
	if err != nil {
		return ProjectPage{}, err
	}
	if total < 0 {
		total = len(items)
	}
	return ProjectPage{Items: items, Total: total}, nil
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (project.Project, error) {
	var p project.Project
	_, err := c.do(ctx, http.MethodPost, "/projects", nil, in, &p)
	return p, err
}

func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (project.Project, error) {
	var p project.Project
	_, err := c.do(ctx, http.MethodPut, idPath("/projects", id), nil, in, &p)
	return p, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/projects", id), nil, nil, nil)
	return err
}

func (c *Client) ProjectLinks(ctx context.Context) ([]project.Link, error) {
	var out []project.Link
	_, err := c.do(ctx, http.MethodGet, "/project-links", nil, nil, &out)
	return out, err
}

// SetProjectLink creates or replaces the link of a project.
func (c *Client) SetProjectLink(ctx context.Context, projectID int64, url string) (project.Link, error) {
	var l project.Link
	_, err := c.do(ctx, http.MethodPut, idPath("/project-links", projectID), nil, map[string]string{"url": url}, &l)
	return l, err
}

func (c *Client) DeleteProjectLink(ctx context.Context, projectID int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/project-links", projectID), nil, nil, nil)
	return err
}

func (c *Client) Skills(ctx context.Context) ([]skill.Skill, error) {
	var out []skill.Skill
	_, err := c.do(ctx, http.MethodGet, "/skills", nil, nil, &out)
	return out, err
}

func (c *Client) TopSkills(ctx context.Context) ([]skill.Usage, error) {
	var out []skill.Usage
	_, err := c.do(ctx, http.MethodGet, "/skills/top", nil, nil, &out)
	return out, err
}

func (c *Client) CreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	var s skill.Skill
	_, err := c.do(ctx, http.MethodPost, "/skills", nil, map[string]string{"name": name}, &s)
	return s, err
}

func (c *Client) UpdateSkill(ctx context.Context, id int64, name string) (skill.Skill, error) {
	var s skill.Skill
	_, err := c.do(ctx, http.MethodPut, idPath("/skills", id), nil, map[string]string{"name": name}, &s)
	return s, err
}

func (c *Client) DeleteSkill(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/skills", id), nil, nil, nil)
	return err
}

func (c *Client) ProjectSkills(ctx context.Context, projectID int64) ([]skill.Skill, error) {
	var out []skill.Skill
	_, err := c.do(ctx, http.MethodGet, idPath("/project-skills/project", projectID), nil, nil, &out)
	return out, err
}

func (c *Client) AddProjectSkill(ctx context.Context, projectID, skillID int64) error {
	_, err := c.do(ctx, http.MethodPost, idPath("/project-skills/project", projectID), nil, map[string]int64{"skillId": skillID}, nil)
	return err
}

func (c *Client) RemoveProjectSkill(ctx context.Context, projectID, skillID int64) error {
	path := idPath(idPath("/project-skills/project", projectID)+"/skill", skillID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}
