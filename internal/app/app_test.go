package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		App:       config.AppConfig{AppName: "portfolio-api", Environment: "test", HTTPPort: "0"},
		JWT:       config.JWTConfig{Secret: "test-secret"},
		Portfolio: config.PortfolioConfig{PublicOwnerUserID: 1},
	}
}

func newTestApp(t *testing.T, mutate func(*config.Config)) (*fiber.App, *memory.Store) {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	store := memory.New()
	return New(NewMemoryContainer(cfg, nil, store)).Fiber, store
}

type result struct {
	status int
	header http.Header
	body   []byte
}

func (r result) decode(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func (r result) errorMessage(t *testing.T) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.decode(t, &body)
	return body.Error
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) result {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, header: resp.Header, body: raw}
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Profile *struct {
		ID     int64  `json:"id"`
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
	} `json:"profile"`
}

func signup(t *testing.T, app *fiber.App, username string) sessionBody {
	t.Helper()
	res := do(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"password": "secret-pass",
		"name":     "Name " + username,
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	var s sessionBody
	res.decode(t, &s)
	return s
}

func TestSignup_ReturnsProfileOwnedByNewUser(t *testing.T) {
	app, _ := newTestApp(t, nil)

	s := signup(t, app, "alice")

	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "alice", s.User.Username)
	require.NotNil(t, s.Profile)
	assert.Equal(t, s.User.ID, s.Profile.UserID)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	app, _ := newTestApp(t, nil)
	signup(t, app, "alice")

	res := do(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "alice", "password": "x", "name": "A", "email": "a@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "User already exists", res.errorMessage(t))
}

func TestLoginThenMe(t *testing.T) {
	app, _ := newTestApp(t, nil)
	created := signup(t, app, "alice")

	res := do(t, app, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "secret-pass"})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	var s sessionBody
	res.decode(t, &s)
	require.NotNil(t, s.Profile)
	assert.Equal(t, created.Profile.ID, s.Profile.ID)

	me := do(t, app, http.MethodGet, "/auth/me", s.Token, nil)
	require.Equal(t, http.StatusOK, me.status)
	var u struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	me.decode(t, &u)
	assert.Equal(t, created.User.ID, u.ID)
	assert.Equal(t, "alice", u.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := newTestApp(t, nil)
	signup(t, app, "alice")

	res := do(t, app, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Invalid credentials", res.errorMessage(t))
}

func TestAuthGuardMessages(t *testing.T) {
	app, _ := newTestApp(t, nil)

	res := do(t, app, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, middleware.MessageNoToken, res.errorMessage(t))

	res = do(t, app, http.MethodGet, "/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, middleware.MessageTokenInvalid, res.errorMessage(t))
}

func TestBadBodyAndInvalidID(t *testing.T) {
	app, _ := newTestApp(t, nil)
	s := signup(t, app, "alice")

	res := do(t, app, http.MethodPost, "/skills", s.Token, "{not json")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid request body", res.errorMessage(t))

	res = do(t, app, http.MethodGet, "/projects/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid id", res.errorMessage(t))
}

func TestCatalogWritesRequireAuthByDefault(t *testing.T) {
	app, _ := newTestApp(t, nil)

	res := do(t, app, http.MethodPost, "/skills", "", map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestCatalogWritesPublic(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.Portfolio.CatalogWritesPublic = true })

	res := do(t, app, http.MethodPost, "/skills", "", map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusCreated, res.status, string(res.body))
}

func TestSkillDuplicateLeavesCountUnchanged(t *testing.T) {
	app, store := newTestApp(t, nil)
	s := signup(t, app, "alice")

	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/skills", s.Token, map[string]string{"name": "Go"}).status)

	res := do(t, app, http.MethodPost, "/skills", s.Token, map[string]string{"name": "Go"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Skill already exists", res.errorMessage(t))

	n, err := store.Skills().Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteMissingReturns404(t *testing.T) {
	app, _ := newTestApp(t, nil)
	s := signup(t, app, "alice")

	res := do(t, app, http.MethodDelete, "/skills/999", s.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Skill not found", res.errorMessage(t))

	res = do(t, app, http.MethodDelete, "/projects/999", s.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Project not found", res.errorMessage(t))
}

type idBody struct {
	ID int64 `json:"id"`
}

func TestProjectSkillsAndFilter(t *testing.T) {
	app, _ := newTestApp(t, nil)
	s := signup(t, app, "alice")

	var goSkill, api, site idBody
	do(t, app, http.MethodPost, "/skills", s.Token, map[string]string{"name": "Go"}).decode(t, &goSkill)
	do(t, app, http.MethodPost, "/projects", s.Token, map[string]string{"title": "API", "description": "backend"}).decode(t, &api)
	do(t, app, http.MethodPost, "/projects", s.Token, map[string]string{"title": "Site", "description": "frontend"}).decode(t, &site)

	path := "/project-skills/project/" + strconv.FormatInt(api.ID, 10)
	res := do(t, app, http.MethodPost, path, s.Token, map[string]int64{"skillId": goSkill.ID})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = do(t, app, http.MethodPost, path, s.Token, map[string]int64{"skillId": goSkill.ID})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Skill already associated with this project", res.errorMessage(t))

	res = do(t, app, http.MethodGet, "/projects?skill=go", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var items []idBody
	res.decode(t, &items)
	require.Len(t, items, 1)
	assert.Equal(t, api.ID, items[0].ID)
	assert.Equal(t, "1", res.header.Get("X-Total-Count"))

	res = do(t, app, http.MethodGet, "/projects?limit=1&offset=1", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	res.decode(t, &items)
	require.Len(t, items, 1)
	assert.Equal(t, site.ID, items[0].ID)
	assert.Equal(t, "2", res.header.Get("X-Total-Count"))

	res = do(t, app, http.MethodGet, "/projects?offset=1", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	res.decode(t, &items)
	require.Len(t, items, 1)
	assert.Equal(t, site.ID, items[0].ID)
	assert.Equal(t, "2", res.header.Get("X-Total-Count"))

	res = do(t, app, http.MethodDelete, path+"/skill/"+strconv.FormatInt(goSkill.ID, 10), s.Token, nil)
	assert.Equal(t, http.StatusOK, res.status)
	res = do(t, app, http.MethodDelete, path+"/skill/"+strconv.FormatInt(goSkill.ID, 10), s.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestSearchRequiresQuery(t *testing.T) {
	app, _ := newTestApp(t, nil)

	res := do(t, app, http.MethodGet, "/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Search query is required", res.errorMessage(t))
}

func TestWorkExperienceOwnership(t *testing.T) {
	app, _ := newTestApp(t, nil)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	res := do(t, app, http.MethodPost, "/work-experience", alice.Token, map[string]any{
		"company": "Acme", "role": "Engineer", "start_date": "2023-01-01",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	var w idBody
	res.decode(t, &w)

	path := "/work-experience/" + strconv.FormatInt(w.ID, 10)
	res = do(t, app, http.MethodPut, path, bob.Token, map[string]any{
		"company": "Evil", "role": "Intruder", "start_date": "2023-01-01",
	})
	assert.Equal(t, http.StatusForbidden, res.status)

	res = do(t, app, http.MethodDelete, path, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = do(t, app, http.MethodGet, "/work-experience", bob.Token, nil)
	require.Equal(t, http.StatusOK, res.status)
	var items []idBody
	res.decode(t, &items)
	assert.Empty(t, items)

	res = do(t, app, http.MethodPost, "/work-experience", alice.Token, map[string]any{
		"company": "Acme", "role": "Engineer", "start_date": "2023-05-01", "end_date": "2023-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "end_date must not be before start_date", res.errorMessage(t))
}

func TestPublicDefaultProfile(t *testing.T) {
	app, _ := newTestApp(t, nil)

	res := do(t, app, http.MethodGet, "/profile/public/default", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	owner := signup(t, app, "owner")
	require.Equal(t, int64(1), owner.User.ID)

	res = do(t, app, http.MethodGet, "/profile/public/default", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var p struct {
		Name string `json:"name"`
	}
	res.decode(t, &p)
	assert.Equal(t, "Name owner", p.Name)
}

func TestProfileLinksUpsert(t *testing.T) {
	app, _ := newTestApp(t, nil)
	s := signup(t, app, "alice")

	res := do(t, app, http.MethodGet, "/profile-links", s.Token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = do(t, app, http.MethodPut, "/profile-links", s.Token, map[string]string{"github": "https://github.com/alice"})
	assert.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = do(t, app, http.MethodPut, "/profile-links", s.Token, map[string]string{"github": "https://github.com/alice2"})
	assert.Equal(t, http.StatusOK, res.status)

	var links struct {
		GitHub string `json:"github"`
	}
	do(t, app, http.MethodGet, "/profile-links", s.Token, nil).decode(t, &links)
	assert.Equal(t, "https://github.com/alice2", links.GitHub)
}

func TestAuthLimiterCountsOnlyFailures(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.HTTP.RateLimitEnabled = true })
	bad := map[string]string{"username": "ghost", "password": "nope"}

	for i := 0; i < middleware.DefaultRateLimits().Auth; i++ {
		res := do(t, app, http.MethodPost, "/auth/login", "", bad)
		require.Equal(t, http.StatusUnauthorized, res.status, "attempt %d", i+1)
	}

	res := do(t, app, http.MethodPost, "/auth/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, "Too many requests, please try again later.", res.errorMessage(t))
}

func TestHealthWithoutDatabase(t *testing.T) {
	app, _ := newTestApp(t, nil)

	res := do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.status)

	res = do(t, app, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var idx struct {
		Version string `json:"version"`
	}
	res.decode(t, &idx)
	assert.Equal(t, Version, idx.Version)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9000")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}

func TestCORSExposesTotalCount(t *testing.T) {
	app, _ := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlExposeHeaders), "X-Total-Count")
}

func TestCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, corsOrigins(""))
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, corsOrigins(" https://a.dev, ,https://b.dev"))
}

func TestStatusReportsCounts(t *testing.T) {
	app, _ := newTestApp(t, nil)
	s := signup(t, app, "alice")
	do(t, app, http.MethodPost, "/skills", s.Token, map[string]string{"name": "Go"})
	do(t, app, http.MethodPost, "/projects", s.Token, map[string]string{"title": "API"})

	res := do(t, app, http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	var st struct {
		Projects        int  `json:"projects"`
		Skills          int  `json:"skills"`
		DatabaseHealthy bool `json:"database_healthy"`
		CacheHealthy    bool `json:"cache_healthy"`
	}
	res.decode(t, &st)
	assert.Equal(t, 1, st.Projects)
	assert.Equal(t, 1, st.Skills)
	assert.False(t, st.DatabaseHealthy)
	assert.False(t, st.CacheHealthy)
}
