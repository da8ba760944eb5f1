package handler

import (
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WorkExperienceHandler struct {
	uc usecase.WorkExperienceUsecase
}

// profile_id is accepted for compatibility and ignored; rows always belong
// to the caller's profile.
type workExperienceRequest struct {
	ProfileID   *int64  `json:"profile_id"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

func (r workExperienceRequest) input() usecase.ExperienceInput {
	return usecase.ExperienceInput{
		Company:     r.Company,
		Role:        r.Role,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
	}
}

func NewWorkExperienceHandler(uc usecase.WorkExperienceUsecase) *WorkExperienceHandler {
	return &WorkExperienceHandler{uc: uc}
}

func (h *WorkExperienceHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/public/default", h.PublicDefault)
	r.Get("/", auth, h.List)
	r.Get("/:id", auth, h.Get)
	r.Post("/", auth, h.Create)
	r.Put("/:id", auth, h.Update)
	r.Delete("/:id", auth, h.Delete)
}

func (h *WorkExperienceHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return fail(err, "Failed to fetch work experience")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *WorkExperienceHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	w, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(err, "Failed to fetch work experience")
	}
	return response.JSON(c, fiber.StatusOK, w)
}

func (h *WorkExperienceHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req workExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	w, err := h.uc.Create(c.Context(), userID, req.input())
	if err != nil {
		return fail(err, "Failed to create work experience")
	}
	return response.JSON(c, fiber.StatusCreated, w)
}

func (h *WorkExperienceHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req workExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	w, err := h.uc.Update(c.Context(), userID, id, req.input())
	if err != nil {
		return fail(err, "Failed to update work experience")
	}
	return response.JSON(c, fiber.StatusOK, w)
}

func (h *WorkExperienceHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(err, "Failed to delete work experience")
	}
	return response.Message(c, fiber.StatusOK, "Work experience deleted")
}

func (h *WorkExperienceHandler) PublicDefault(c fiber.Ctx) error {
	items, err := h.uc.PublicDefault(c.Context())
	if err != nil {
		return fail(err, "Failed to fetch work experience")
	}
	return response.JSON(c, fiber.StatusOK, items)
}
