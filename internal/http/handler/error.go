package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hrapi/internal/http/middleware"
	"hrapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
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

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeFieldError(c, status, code, message, "")
}

func writeFieldError(c *fiber.Ctx, status int, code, message, field string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	return c.Status(status).JSON(res)
}

// mapServiceError translates service-layer failures into HTTP responses. The
// order matters: the file sentinels are wrapped inside validation errors and
// carry more specific status codes.
func mapServiceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	var se *service.StorageError

	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
	case errors.Is(err, service.ErrUnsupportedFileType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "file type is not allowed")
	case errors.As(err, &ve):
		return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Reason, ve.Field)
	case errors.Is(err, service.ErrPartyNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "party not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrProfileNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "profile not found")
	case errors.Is(err, service.ErrFileNotStored):
		return writeError(c, fiber.StatusConflict, "FILE_NOT_STORED", "document has no stored file")
	case errors.Is(err, service.ErrVersionConflict):
		return writeError(c, fiber.StatusConflict, "VERSION_CONFLICT", "concurrent upload for the same document, retry")
	case errors.As(err, &se):
		return writeError(c, fiber.StatusBadGateway, "STORAGE_ERROR", "file storage is unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", message)
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
