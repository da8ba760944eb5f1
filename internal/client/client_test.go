package client_test

import (
	"context"
	"net"
	"net/http"
	"testing"

	"portfolio-api/internal/app"
	"portfolio-api/internal/client"
	"portfolio-api/internal/config"
	"portfolio-api/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()

	cfg := config.Config{
		App:       config.AppConfig{AppName: "portfolio-api", Environment: "test", HTTPPort: "0"},
		JWT:       config.JWTConfig{Secret: "client-test-secret"},
		Portfolio: config.PortfolioConfig{PublicOwnerUserID: 1},
	}
	a := app.New(app.NewMemoryContainer(cfg, nil, memory.New()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = a.Fiber.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() { _ = a.Fiber.Shutdown() })

	return "http://" + ln.Addr().String()
}

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(baseURL)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := client.New("  ")
	assert.ErrorIs(t, err, client.ErrNoBaseURL)
}

func TestSignupLoginLogout(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, startServer(t))
	assert.False(t, c.IsAuthenticated())

	s, err := c.Signup(ctx, client.SignupRequest{Username: "owner", Password: "pw", Name: "Owner", Email: "o@example.com"})
	require.NoError(t, err)
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, s.Token, c.Token())
	require.NotNil(t, s.Profile)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner", me.Username)

	c.Logout()
	assert.False(t, c.IsAuthenticated())
	_, err = c.Me(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	_, err = c.Login(ctx, "owner", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, c.IsAuthenticated())

	_, err = c.Login(ctx, "owner", "pw")
	require.NoError(t, err)
	assert.True(t, c.IsAuthenticated())
}

func TestLoadPortfolio_AnonymousAndAuthenticated(t *testing.T) {
	ctx := context.Background()
	base := startServer(t)

	anon := newClient(t, base)
	p, err := anon.LoadPortfolio(ctx)
	require.NoError(t, err)
	assert.Nil(t, p.Profile)
	assert.Empty(t, p.Projects)

	owner := newClient(t, base)
	_, err = owner.Signup(ctx, client.SignupRequest{Username: "owner", Password: "pw", Name: "Owner", Email: "o@example.com"})
	require.NoError(t, err)

	_, err = owner.SaveProfileLinks(ctx, client.LinksInput{GitHub: "https://github.com/owner"})
	require.NoError(t, err)
	_, err = owner.CreateWorkExperience(ctx, client.WorkExperienceInput{Company: "Acme", Role: "Dev", StartDate: "2022-02-01"})
	require.NoError(t, err)
	goSkill, err := owner.CreateSkill(ctx, "Go")
	require.NoError(t, err)
	proj, err := owner.CreateProject(ctx, client.ProjectInput{Title: "API", Description: "backend"})
	require.NoError(t, err)
	require.NoError(t, owner.AddProjectSkill(ctx, proj.ID, goSkill.ID))
	_, err = owner.SetProjectLink(ctx, proj.ID, "https://example.com/api")
	require.NoError(t, err)

	p, err = anon.LoadPortfolio(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.Profile)
	assert.Equal(t, "Owner", p.Profile.Name)
	assert.Equal(t, "https://github.com/owner", p.Links.GitHub)
	require.Len(t, p.WorkExperience, 1)
	assert.Equal(t, "2022-02-01", p.WorkExperience[0].StartDate.String())
	require.Len(t, p.Projects, 1)
	require.NotNil(t, p.Projects[0].ProjectURL)
	assert.Equal(t, "https://example.com/api", *p.Projects[0].ProjectURL)
	assert.Len(t, p.Skills, 1)

	mine, err := owner.LoadPortfolio(ctx)
	require.NoError(t, err)
	require.NotNil(t, mine.Profile)
	assert.Equal(t, p.Profile.ID, mine.Profile.ID)
}

func TestListProjectsPage(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, startServer(t))
	_, err := c.Signup(ctx, client.SignupRequest{Username: "owner", Password: "pw", Name: "Owner", Email: "o@example.com"})
	require.NoError(t, err)

	for _, title := range []string{"one", "two", "three"} {
		_, err := c.CreateProject(ctx, client.ProjectInput{Title: title})
		require.NoError(t, err)
	}

	page, err := c.ListProjectsPage(ctx, client.ProjectQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "three", page.Items[0].Title)

	found, err := c.SearchProjects(ctx, "tw", 0, 0)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "two", found.Items[0].Title)

	_, err = c.SearchProjects(ctx, "", 0, 0)
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))
}

func TestMutationsRequireToken(t *testing.T) {
	c := newClient(t, startServer(t))

	_, err := c.CreateSkill(context.Background(), "Go")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, client.Paginate(items, 1, client.SkillsPerPage))
	assert.Equal(t, []int{7}, client.Paginate(items, 3, client.SkillsPerPage))
	assert.Empty(t, client.Paginate(items, 4, client.SkillsPerPage))
	assert.Empty(t, client.Paginate(items, 0, client.SkillsPerPage))

	assert.Equal(t, 2, client.TotalPages(len(items), client.ProjectsPerPage))
	assert.Equal(t, 0, client.TotalPages(0, client.ProjectsPerPage))
}
