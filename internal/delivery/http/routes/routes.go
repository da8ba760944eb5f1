package routes

import (
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Profile        *handler.ProfileHandler
	WorkExperience *handler.WorkExperienceHandler
	Project        *handler.ProjectHandler
	ProjectLink    *handler.ProjectLinkHandler
	Skill          *handler.SkillHandler
	ProjectSkill   *handler.ProjectSkillHandler
	Changes        *ws.Handler
}

type Options struct {
	Auth   *middleware.AuthMiddleware
	Errors *middleware.ErrorMiddleware
	// Limits is nil when rate limiting is disabled.
	Limits *middleware.RateLimits
	// CatalogWritesPublic lets anonymous callers mutate skills, projects,
	// project links and project skills.
	CatalogWritesPublic bool
}

type Registry struct {
	h   Handlers
	opt Options
}

func NewRegistry(h Handlers, opt Options) *Registry {
	return &Registry{h: h, opt: opt}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.h.Health.RegisterRoutes(app)
	if r.h.Changes != nil {
		app.Get("/ws", r.h.Changes.HandleChanges)
	}

	r.registerAuth(app)
	r.registerPortfolio(app)
	r.registerCatalog(app)
}

func (r *Registry) registerAuth(app *fiber.App) {
	auth := app.Group("/auth")
	if r.opt.Limits != nil {
		// The inner error middleware renders failures before the limiter
		// decides whether the attempt counts.
		auth.Use(r.opt.Limits.AuthLimiter(), r.opt.Errors.Middleware())
	}

	r.h.Auth.RegisterRoutes(auth)
	auth.Get("/me", r.opt.Auth.Middleware(), r.h.Auth.Me)
}

func (r *Registry) registerPortfolio(app *fiber.App) {
	guard := r.opt.Auth.Middleware()

	r.h.Profile.RegisterProfileRoutes(r.limited(app, "/profile"), guard)
	r.h.Profile.RegisterLinkRoutes(r.limited(app, "/profile-links"), guard)
	r.h.WorkExperience.RegisterRoutes(r.limited(app, "/work-experience"), guard)
}

func (r *Registry) registerCatalog(app *fiber.App) {
	write := r.opt.Auth.Middleware()
	if r.opt.CatalogWritesPublic {
		write = r.opt.Auth.Optional()
	}

	r.h.Project.RegisterRoutes(r.limited(app, "/projects"), write)
	r.h.Project.RegisterSearchRoutes(app.Group("/search"))
	r.h.ProjectLink.RegisterRoutes(r.limited(app, "/project-links"), write)
	r.h.Skill.RegisterRoutes(r.limited(app, "/skills"), write)
	r.h.ProjectSkill.RegisterRoutes(r.limited(app, "/project-skills"), write)
}

// limited returns a group behind the api limiter when limits are enabled.
func (r *Registry) limited(app *fiber.App, prefix string) fiber.Router {
	g := app.Group(prefix)
	if r.opt.Limits != nil {
		g.Use(r.opt.Limits.APILimiter())
	}
	return g
}
