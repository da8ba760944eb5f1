package middleware

import (
	"errors"
	"fmt"

	"portfolio-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Details    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

// ErrorMiddleware renders every returned error as {"error", "details"}.
// Details of server errors are only exposed outside production.
type ErrorMiddleware struct {
	logger     *zap.Logger
	production bool
}

func NewErrorMiddleware(logger *zap.Logger, production bool) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger, production: production}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()))
				err = m.render(c, NewAppError(fiber.StatusInternalServerError, "", fmt.Errorf("panic: %v", r)))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		return m.render(c, err)
	}
}

// Handler is the fiber.Config ErrorHandler for errors raised outside the
// middleware chain.
func (m *ErrorMiddleware) Handler(c fiber.Ctx, err error) error {
	return m.render(c, err)
}

func (m *ErrorMiddleware) render(c fiber.Ctx, err error) error {
	status, msg, details := normalizeError(err)
	if status >= 500 {
		m.logger.Error("request failed",
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if m.production {
			details = ""
		}
	}
	return response.Error(c, status, msg, details)
}

func normalizeError(err error) (int, string, string) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		details := appErr.Details
		if details == "" && status >= 500 && appErr.Cause != nil {
			details = appErr.Cause.Error()
		}
		return status, msg, details
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}
		if status >= 500 {
			return status, response.DefaultMessageForStatus(status), fiberErr.Message
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, ""
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, err.Error()
}
