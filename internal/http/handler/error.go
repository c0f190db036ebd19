package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// statusForServiceError maps the service layer's sentinel errors onto
// HTTP statuses and machine-readable codes.
func statusForServiceError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", true
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", true
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS", true
	case errors.Is(err, service.ErrAccountInactive):
		return fiber.StatusForbidden, "ACCOUNT_INACTIVE", true
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrInvalidToken):
		return fiber.StatusUnauthorized, "SESSION_EXPIRED", true
	case errors.Is(err, service.ErrUsernameTaken):
		return fiber.StatusConflict, "USERNAME_TAKEN", true
	case errors.Is(err, service.ErrEmailTaken):
		return fiber.StatusConflict, "EMAIL_TAKEN", true
	case errors.Is(err, service.ErrDuplicateApplication):
		return fiber.StatusConflict, "DUPLICATE_APPLICATION", true
	case errors.Is(err, service.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION", true
	case errors.Is(err, service.ErrDocumentsIncomplete):
		return fiber.StatusUnprocessableEntity, "DOCUMENTS_INCOMPLETE", true
	case errors.Is(err, service.ErrInvalidDocument):
		return fiber.StatusUnprocessableEntity, "INVALID_DOCUMENT", true
	case errors.Is(err, service.ErrAmountTooSmall):
		return fiber.StatusUnprocessableEntity, "AMOUNT_TOO_SMALL", true
	case errors.Is(err, service.ErrInsufficientBalance):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", true
	case errors.Is(err, service.ErrReasonRequired):
		return fiber.StatusBadRequest, "REASON_REQUIRED", true
	case errors.Is(err, service.ErrMissingFields):
		return fiber.StatusBadRequest, "MISSING_FIELDS", true
	}
	return 0, "", false
}

// ErrorHandler returns a Fiber global error handler that standardizes
// error responses. Service sentinel errors keep their message; anything
// unexpected is hidden behind a generic 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if status, code, ok := statusForServiceError(err); ok {
			return writeError(c, status, code, err.Error())
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			if status < fiber.StatusInternalServerError {
				message = e.Message
			}
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", message)
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
