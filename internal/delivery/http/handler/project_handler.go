package handler

import (
	"strconv"

	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const HeaderTotalCount = "X-Total-Count"

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// RegisterRoutes mounts /projects. write guards the mutating routes.
func (h *ProjectHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", write, h.Create)
	r.Put("/:id", write, h.Update)
	r.Delete("/:id", write, h.Delete)
}

func (h *ProjectHandler) RegisterSearchRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Search)
}

func pageInput(c fiber.Ctx) (usecase.ProjectListInput, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return usecase.ProjectListInput{}, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return usecase.ProjectListInput{}, err
	}
	in := usecase.ProjectListInput{Limit: limit}
	if offset != nil {
		in.Offset = *offset
	}
	return in, nil
}

func writePage(c fiber.Ctx, page usecase.ProjectPage) error {
	c.Set(HeaderTotalCount, strconv.Itoa(page.Total))
	return response.JSON(c, fiber.StatusOK, page.Items)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	in, err := pageInput(c)
	if err != nil {
		return err
	}
	in.Skill = c.Query("skill")

	page, err := h.uc.List(c.Context(), in)
	if err != nil {
		return fail(err, "Failed to fetch projects")
	}
	return writePage(c, page)
}

func (h *ProjectHandler) Search(c fiber.Ctx) error {
	in, err := pageInput(c)
	if err != nil {
		return err
	}
	in.Query = c.Query("q")

	page, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return fail(err, "Failed to search projects")
	}
	return writePage(c, page)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return fail(err, "Failed to fetch project")
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req projectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Create(c.Context(), usecase.ProjectInput(req))
	if err != nil {
		return fail(err, "Failed to create project")
	}
	return response.JSON(c, fiber.StatusCreated, p)
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req projectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Update(c.Context(), id, usecase.ProjectInput(req))
	if err != nil {
		return fail(err, "Failed to update project")
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return fail(err, "Failed to delete project")
	}
	return response.Message(c, fiber.StatusOK, "Project deleted")
}
