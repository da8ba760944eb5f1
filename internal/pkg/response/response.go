package response

import "github.com/gofiber/fiber/v3"

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageBody is returned by mutations that have no row to echo back.
type MessageBody struct {
	Message string `json:"message"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageInvalidBody         = "Invalid request body"
	MessageInvalidID           = "Invalid id"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageTooManyRequests     = "Too many requests, please try again later."
	MessageInternalServerError = "Internal server error"
	MessageServiceUnavailable  = "Service unavailable"
	MessageError               = "Error"
)

// JSON writes data as the raw response body.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Message(c fiber.Ctx, status int, message string) error {
	return JSON(c, status, MessageBody{Message: message})
}

func Error(c fiber.Ctx, status int, message, details string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Error: message, Details: details})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
