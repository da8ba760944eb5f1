package handler

import (
	"context"
	"time"

	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	status  usecase.StatusUsecase
	version string
}

func NewHealthHandler(db Pinger, status usecase.StatusUsecase, version string) *HealthHandler {
	return &HealthHandler{db: db, status: status, version: version}
}

type indexResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

var endpoints = []string{
	"GET /health - Health check",
	"GET /status - Service status",
	"POST /auth/register - Register",
	"POST /auth/signup - Signup with profile",
	"POST /auth/login - Login",
	"GET /auth/me - Current user",
	"GET /profile - Get profile",
	"GET /profile/public/default - Get public profile",
	"GET /profile-links - Get profile links",
	"GET /projects - Get projects",
	"GET /project-links - Get project links",
	"GET /project-skills/project/:projectId - Get project skills",
	"GET /skills - Get skills",
	"GET /skills/top - Get top skills",
	"GET /work-experience - Get work experience",
	"GET /search?q= - Search projects",
	"GET /ws - Change event stream",
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	if h.status != nil {
		r.Get("/status", h.Status)
	}
}

func (h *HealthHandler) Index(c fiber.Ctx) error {
	return response.JSON(c, fiber.StatusOK, indexResponse{
		Message:   "Portfolio API",
		Version:   h.version,
		Endpoints: endpoints,
	})
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return response.JSON(c, fiber.StatusServiceUnavailable, fiber.Map{"status": "unavailable"})
		}
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func (h *HealthHandler) Status(c fiber.Ctx) error {
	st, err := h.status.GetStatus(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch status")
	}
	return response.JSON(c, fiber.StatusOK, st)
}
