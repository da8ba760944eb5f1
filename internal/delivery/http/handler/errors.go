package handler

import (
	"errors"
	"strconv"
	"strings"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	msgProfileNotFound     = "Profile not found"
	msgProfileExists       = "Profile already exists"
	msgExperienceNotFound  = "Work experience not found"
	msgExperienceForbidden = "You do not have access to this work experience"
	msgProjectNotFound     = "Project not found"
	msgProjectLinkNotFound = "Project link not found"
	msgProjectLinkExists   = "Project link already exists"
	msgSkillNotFound       = "Skill not found"
	msgSkillExists         = "Skill already exists"
	msgSkillNameExists     = "Skill name already exists"
	msgSkillAssociated     = "Skill already associated with this project"
	msgSkillNotAssociated  = "Skill not associated with this project"
	msgPairTargetNotFound  = "Project or skill not found"
)

// domainErrors maps sentinels shared by several handlers to a status and
// client message. Handlers override entries where the wording differs.
var domainErrors = []struct {
	target  error
	status  int
	message string
}{
	{profile.ErrNotFound, fiber.StatusNotFound, msgProfileNotFound},
	{profile.ErrAlreadyExists, fiber.StatusBadRequest, msgProfileExists},
	{experience.ErrNotFound, fiber.StatusNotFound, msgExperienceNotFound},
	{project.ErrNotFound, fiber.StatusNotFound, msgProjectNotFound},
	{project.ErrLinkNotFound, fiber.StatusNotFound, msgProjectLinkNotFound},
	{project.ErrLinkExists, fiber.StatusBadRequest, msgProjectLinkExists},
	{skill.ErrNotFound, fiber.StatusNotFound, msgSkillNotFound},
	{skill.ErrNameTaken, fiber.StatusBadRequest, msgSkillExists},
	{skill.ErrAlreadyAssociated, fiber.StatusBadRequest, msgSkillAssociated},
	{skill.ErrNotAssociated, fiber.StatusNotFound, msgSkillNotAssociated},
	{skill.ErrProjectOrSkillNotFound, fiber.StatusNotFound, msgPairTargetNotFound},
	{usecase.ErrUnauthorized, fiber.StatusUnauthorized, response.MessageUnauthorized},
	{usecase.ErrForbidden, fiber.StatusForbidden, msgExperienceForbidden},
}

// fail converts a usecase error into an AppError. Unknown errors become a
// 500 carrying fallback as the message.
func fail(err error, fallback string) error {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, err)
	}
	if errors.Is(err, usecase.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.message, err)
		}
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, fallback, err)
}

func currentUser(c fiber.Ctx) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageNoToken, nil)
	}
	return id, nil
}

// pathID parses a positive integer path parameter.
func pathID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidID, err)
	}
	return id, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
	}
	return nil
}

// queryInt returns nil when key is absent.
func queryInt(c fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, err)
	}
	return &v, nil
}
