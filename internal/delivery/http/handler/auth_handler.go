package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"
	ucauth "portfolio-api/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Education string `json:"education"`
}

type sessionResponse struct {
	Token   string           `json:"token"`
	User    user.Public      `json:"user"`
	Profile *profile.Profile `json:"profile"`
}

type registerResponse struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the public credential endpoints.
func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req credentialsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return mapAuthError(err, "Username and password are required", "Failed to register user")
	}
	return response.JSON(c, fiber.StatusCreated, registerResponse{Token: sess.Token, User: sess.User.Public()})
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.Signup(c.Context(), ucauth.SignupInput{
		Username:  req.Username,
		Password:  req.Password,
		Name:      req.Name,
		Email:     req.Email,
		Education: req.Education,
	})
	if err != nil {
		return mapAuthError(err, "Username, password, name, and email are required", "Failed to create user")
	}
	return response.JSON(c, fiber.StatusCreated, sessionResponse{Token: sess.Token, User: sess.User.Public(), Profile: sess.Profile})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req credentialsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.Login(c.Context(), ucauth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return mapAuthError(err, "Username and password are required", "Failed to login")
	}
	return response.JSON(c, fiber.StatusOK, sessionResponse{Token: sess.Token, User: sess.User.Public(), Profile: sess.Profile})
}

// Me is mounted behind the auth guard.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	u, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageTokenInvalid, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to fetch user", err)
	}
	return response.JSON(c, fiber.StatusOK, u.Public())
}

func mapAuthError(err error, invalidMsg, fallback string) error {
	switch {
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, invalidMsg, err)
	case errors.Is(err, ucauth.ErrUsernameTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, "User already exists", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, fallback, err)
	}
}
