package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/migration"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/repository"
	"portfolio-api/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a disposable Postgres database. They are skipped unless
// PORTFOLIO_TEST_DATABASE_URL or the PORTFOLIO_TEST_DB_* variables are set.

func TestIntegration_SeedSignupAndCatalog(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	owner := seeder.DefaultOwner("it-owner-"+uuid.NewString()[:8], "it-password")
	r := seeder.Runner{Seeders: seeder.Defaults(owner)}
	require.NoError(t, r.Run(ctx, db))
	// Seeding is idempotent.
	require.NoError(t, r.Run(ctx, db))
	defer cleanupUser(t, db, owner.Username)

	skills := repository.NewPostgresSkillRepository(db)
	n, err := skills.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 11)

	projects, _, err := repository.NewPostgresProjectRepository(db).List(ctx, project.ListFilter{Skill: "postgres"})
	require.NoError(t, err)
	assert.NotEmpty(t, projects)

	fapp := newTestFiberApp(t, ctx, db)

	username := "it-user-" + uuid.NewString()[:8]
	defer cleanupUser(t, db, username)

	tok := signupAndGetToken(t, fapp, username)
	require.NotEmpty(t, tok)

	res := call(t, fapp, http.MethodGet, "/profile", tok, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	res = call(t, fapp, http.MethodPost, "/work-experience", tok, map[string]any{
		"company": "IT Co", "role": "Engineer", "start_date": "2023-01-01", "end_date": nil,
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = call(t, fapp, http.MethodGet, "/projects?skill=postgres&limit=1", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	total, err := strconv.Atoi(res.header.Get("X-Total-Count"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)

	var page []json.RawMessage
	require.NoError(t, json.Unmarshal(res.body, &page))
	assert.Len(t, page, 1)
}

func TestIntegration_SkillNameUniqueness(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()
	runMigrations(t, ctx, db)

	repo := repository.NewPostgresSkillRepository(db)
	name := "it-skill-" + uuid.NewString()[:8]

	s, err := repo.Create(ctx, name)
	require.NoError(t, err)
	defer func() { _ = repo.Delete(context.Background(), s.ID) }()

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	_, err = repo.Create(ctx, name)
	require.Error(t, err)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	dbcfg := config.DatabaseConfig{
		URL:        os.Getenv("PORTFOLIO_TEST_DATABASE_URL"),
		DBHost:     os.Getenv("PORTFOLIO_TEST_DB_HOST"),
		DBPort:     os.Getenv("PORTFOLIO_TEST_DB_PORT"),
		DBName:     os.Getenv("PORTFOLIO_TEST_DB_NAME"),
		DBUser:     os.Getenv("PORTFOLIO_TEST_DB_USER"),
		DBPassword: os.Getenv("PORTFOLIO_TEST_DB_PASSWORD"),
		DBSSLMode:  os.Getenv("PORTFOLIO_TEST_DB_SSL_MODE"),
	}
	if dbcfg.URL == "" && (dbcfg.DBHost == "" || dbcfg.DBName == "") {
		t.Skip("missing test DB env vars: set PORTFOLIO_TEST_DATABASE_URL or PORTFOLIO_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}

	db, err := dbpostgres.Connect(ctx, dbcfg, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()
	r := migration.Runner{FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func cleanupUser(t *testing.T, db database.DB, username string) {
	t.Helper()
	// profile, profile_links and work_experience cascade from users.
	_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE username = $1`, username)
}

func newTestFiberApp(t *testing.T, ctx context.Context, db database.DB) *fiber.App {
	t.Helper()
	cfg := config.Config{
		App:       config.AppConfig{AppName: "portfolio-api", Environment: "test", HTTPPort: "0"},
		JWT:       config.JWTConfig{Secret: "it-secret"},
		Portfolio: config.PortfolioConfig{PublicOwnerUserID: 1},
	}
	return app.New(app.NewContainerFromDB(ctx, cfg, nil, db)).Fiber
}

type result struct {
	status int
	header http.Header
	body   []byte
}

func call(t *testing.T, fapp *fiber.App, method, path, token string, body any) result {
	t.Helper()
	var buf *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	var req *http.Request
	if buf != nil {
		req = httptest.NewRequest(method, path, buf)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fapp.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return result{status: resp.StatusCode, header: resp.Header, body: out.Bytes()}
}

func signupAndGetToken(t *testing.T, fapp *fiber.App, username string) string {
	t.Helper()
	res := call(t, fapp, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"password": "password",
		"name":     "Integration User",
		"email":    username + "@example.com",
	})
	if res.status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", res.status, res.body)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(res.body, &body); err != nil {
		t.Fatalf("signup decode error: %v", err)
	}
	return body.Token
}
