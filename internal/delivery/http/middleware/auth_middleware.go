package middleware

import (
	"errors"
	"strings"

	"portfolio-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxUserIDKey = "user_id"

const (
	MessageNoToken      = "No token provided. Please login first."
	MessageTokenExpired = "Token expired. Please login again."
	MessageTokenInvalid = "Invalid or malformed token"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid bearer token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, MessageNoToken, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, MessageTokenExpired, err)
			}
			return NewAppError(fiber.StatusUnauthorized, MessageTokenInvalid, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		return c.Next()
	}
}

// Optional attaches the caller's identity when a valid token is present and
// lets every other request through untouched.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization)); ok {
			if claims, err := m.jwt.ValidateToken(token); err == nil {
				c.Locals(CtxUserIDKey, claims.UserID)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id stored by the guard.
func UserID(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(CtxUserIDKey).(int64)
	return id, ok && id > 0
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
