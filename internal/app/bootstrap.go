package app

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/config"
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

const Version = "1.0.0"

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an already wired container. The
// caller owns running the container's hub.
func New(c *Container) *App {
	cfg := c.Config
	errMw := middleware.NewErrorMiddleware(c.Logger, cfg.App.IsProduction())

	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: errMw.Handler,
	})

	var limits *middleware.RateLimits
	if cfg.HTTP.RateLimitEnabled {
		l := middleware.DefaultRateLimits()
		limits = &l
	}

	registerGlobalMiddleware(f, c.Logger, errMw, cfg.HTTP, limits)
	registerRoutes(f, c, errMw, limits)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the Postgres-backed container, starts the change hub and
// returns a cleanup that stops both.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		<-c.Hub.Done()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger, errMw *middleware.ErrorMiddleware, httpCfg config.HTTPConfig, limits *middleware.RateLimits) {
	if app == nil {
		return
	}

	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins(httpCfg.CORSAllowOrigins),
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization},
		ExposeHeaders: []string{handler.HeaderTotalCount, middleware.HeaderRequestID},
	}))
	if limits != nil {
		app.Use(limits.GlobalLimiter())
	}
}

func registerRoutes(app *fiber.App, c *Container, errMw *middleware.ErrorMiddleware, limits *middleware.RateLimits) {
	if app == nil {
		return
	}

	uc := c.Usecases
	var pinger handler.Pinger
	if c.DB != nil {
		pinger = c.DB
	}

	h := routes.Handlers{
		Health:         handler.NewHealthHandler(pinger, uc.Status, Version),
		Auth:           handler.NewAuthHandler(uc.Auth),
		Profile:        handler.NewProfileHandler(uc.Profile),
		WorkExperience: handler.NewWorkExperienceHandler(uc.WorkExperience),
		Project:        handler.NewProjectHandler(uc.Project),
		ProjectLink:    handler.NewProjectLinkHandler(uc.ProjectLink),
		Skill:          handler.NewSkillHandler(uc.Skill),
		ProjectSkill:   handler.NewProjectSkillHandler(uc.ProjectSkill),
		Changes:        ws.NewHandler(c.Hub, c.Logger),
	}

	routes.NewRegistry(h, routes.Options{
		Auth:                middleware.NewAuthMiddleware(c.JWT),
		Errors:              errMw,
		Limits:              limits,
		CatalogWritesPublic: c.Config.Portfolio.CatalogWritesPublic,
	}).Register(app)
}

func corsOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
