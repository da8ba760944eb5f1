package handler

import (
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type profileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education"`
}

type profileLinksRequest struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// RegisterProfileRoutes mounts /profile. Everything except the public
// default requires auth.
func (h *ProfileHandler) RegisterProfileRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/public/default", h.PublicDefault)
	r.Get("/", auth, h.Get)
	r.Post("/", auth, h.Create)
	r.Put("/", auth, h.Update)
}

// RegisterLinkRoutes mounts /profile-links.
func (h *ProfileHandler) RegisterLinkRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/public/default", h.PublicLinks)
	r.Get("/", auth, h.Links)
	r.Put("/", auth, h.SaveLinks)
	r.Post("/", auth, h.SaveLinks)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return fail(err, "Failed to fetch profile")
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), userID, usecase.ProfileInput(req))
	if err != nil {
		return fail(err, "Failed to create profile")
	}
	return response.JSON(c, fiber.StatusCreated, p)
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Update(c.Context(), userID, usecase.ProfileInput(req))
	if err != nil {
		return fail(err, "Failed to update profile")
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) PublicDefault(c fiber.Ctx) error {
	p, err := h.uc.PublicDefault(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch profile")
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) Links(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	l, err := h.uc.Links(c.Context(), userID)
	if err != nil {
		return fail(err, "Failed to fetch profile links")
	}
	return response.JSON(c, fiber.StatusOK, l)
}

// SaveLinks answers 201 when the row was created and 200 when updated.
func (h *ProfileHandler) SaveLinks(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req profileLinksRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	l, created, err := h.uc.SaveLinks(c.Context(), userID, usecase.LinksInput(req))
	if err != nil {
		return fail(err, "Failed to save profile links")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.JSON(c, status, l)
}

func (h *ProfileHandler) PublicLinks(c fiber.Ctx) error {
	l, err := h.uc.PublicLinks(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch profile links")
	}
	return response.JSON(c, fiber.StatusOK, l)
}
