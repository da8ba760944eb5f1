package handler

import (
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProjectLinkHandler struct {
	uc usecase.ProjectLinkUsecase
}

type createProjectLinkRequest struct {
	ProjectID int64  `json:"project_id"`
	URL       string `json:"url"`
}

type updateProjectLinkRequest struct {
	URL string `json:"url"`
}

func NewProjectLinkHandler(uc usecase.ProjectLinkUsecase) *ProjectLinkHandler {
	return &ProjectLinkHandler{uc: uc}
}

func (h *ProjectLinkHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:projectId", h.Get)
	r.Post("/", write, h.Create)
	r.Put("/:projectId", write, h.Upsert)
	r.Delete("/:projectId", write, h.Delete)
}

func (h *ProjectLinkHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch project links")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

// Get renders null when the project has no link.
func (h *ProjectLinkHandler) Get(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	l, err := h.uc.Get(c.Context(), projectID)
	if err != nil {
		return fail(err, "Failed to fetch project link")
	}
	return response.JSON(c, fiber.StatusOK, l)
}

func (h *ProjectLinkHandler) Create(c fiber.Ctx) error {
	var req createProjectLinkRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	l, err := h.uc.Create(c.Context(), req.ProjectID, req.URL)
	if err != nil {
		return fail(err, "Failed to create project link")
	}
	return response.JSON(c, fiber.StatusCreated, l)
}

func (h *ProjectLinkHandler) Upsert(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	var req updateProjectLinkRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	l, err := h.uc.Upsert(c.Context(), projectID, req.URL)
	if err != nil {
		return fail(err, "Failed to save project link")
	}
	return response.JSON(c, fiber.StatusOK, l)
}

func (h *ProjectLinkHandler) Delete(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), projectID); err != nil {
		return fail(err, "Failed to delete project link")
	}
	return response.Message(c, fiber.StatusOK, "Project link deleted")
}
