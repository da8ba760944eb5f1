package handler

import (
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProjectSkillHandler struct {
	uc usecase.ProjectSkillUsecase
}

type projectSkillRequest struct {
	SkillID int64 `json:"skillId"`
}

func NewProjectSkillHandler(uc usecase.ProjectSkillUsecase) *ProjectSkillHandler {
	return &ProjectSkillHandler{uc: uc}
}

func (h *ProjectSkillHandler) RegisterRoutes(r fiber.Router, write fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/project/:projectId", h.List)
	r.Post("/project/:projectId", write, h.Add)
	r.Delete("/project/:projectId/skill/:skillId", write, h.Remove)
}

func (h *ProjectSkillHandler) List(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), projectID)
	if err != nil {
		return fail(err, "Failed to fetch project skills")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *ProjectSkillHandler) Add(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	var req projectSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.Add(c.Context(), projectID, req.SkillID); err != nil {
		return fail(err, "Failed to add skill to project")
	}
	return response.Message(c, fiber.StatusCreated, "Skill added to project")
}

func (h *ProjectSkillHandler) Remove(c fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	skillID, err := pathID(c, "skillId")
	if err != nil {
		return err
	}
	if err := h.uc.Remove(c.Context(), projectID, skillID); err != nil {
		return fail(err, "Failed to remove skill from project")
	}
	return response.Message(c, fiber.StatusOK, "Skill removed from project")
}
