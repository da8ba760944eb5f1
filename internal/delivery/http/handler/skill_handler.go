package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type skillRequest struct {
	Name string `json:"name"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/top", h.Top)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", write, h.Create)
	r.Put("/:id", write, h.Update)
	r.Delete("/:id", write, h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch skills")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *SkillHandler) Top(c fiber.Ctx) error {
	items, err := h.uc.Top(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch top skills")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return fail(err, "Failed to fetch skill")
	}
	return response.JSON(c, fiber.StatusOK, s)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req skillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	s, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		return fail(err, "Failed to create skill")
	}
	return response.JSON(c, fiber.StatusCreated, s)
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req skillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	s, err := h.uc.Update(c.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, skill.ErrNameTaken) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgSkillNameExists, err)
		}
		return fail(err, "Failed to update skill")
	}
	return response.JSON(c, fiber.StatusOK, s)
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return fail(err, "Failed to delete skill")
	}
	return response.Message(c, fiber.StatusOK, "Skill deleted")
}
