package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"resumeapi/internal/http/middleware"
	"resumeapi/internal/service"
)

// errorPayload defines the standardized error response body.
// Detail repeats the message at the top level for clients that only read "detail".
type errorPayload struct {
	Detail    string        `json:"detail"`
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps service errors to HTTP responses. First match wins.
// An empty message means the error's own text is safe to show.
var errorStatus = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Candidate not found"},
	{service.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", ""},
	{service.ErrInvalidEmail, fiber.StatusBadRequest, "INVALID_EMAIL", ""},
	{service.ErrInvalidPhone, fiber.StatusBadRequest, "INVALID_PHONE", ""},
	{service.ErrInvalidDob, fiber.StatusBadRequest, "INVALID_DOB", ""},
	{service.ErrMissingField, fiber.StatusBadRequest, "MISSING_FIELD", ""},
	{service.ErrInvalidExperience, fiber.StatusBadRequest, "INVALID_EXPERIENCE", ""},
	{service.ErrMissingFilename, fiber.StatusBadRequest, "FILE_REQUIRED", ""},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED", ""},
	{service.ErrInvalidFileType, fiber.StatusBadRequest, "INVALID_FILE_TYPE", ""},
	{service.ErrUnreadableFile, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file"},
	{service.ErrStorage, fiber.StatusInternalServerError, "STORAGE_ERROR", "failed to store resume"},
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
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		Detail:    message,
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates err through errorStatus. Unknown errors are logged and reported as 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if !errors.Is(err, e.err) {
			continue
		}
		msg := e.message
		if msg == "" {
			msg = err.Error()
		}
		if e.status >= fiber.StatusInternalServerError {
			logUnexpected(c, err)
		}
		return writeError(c, e.status, e.code, msg)
	}
	logUnexpected(c, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func logUnexpected(c *fiber.Ctx, err error) {
	slog.ErrorContext(c.UserContext(), "request_failed",
		"request_id", requestIDFromCtx(c),
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "REQUEST_TOO_LARGE", "request body too large")
		case fiber.StatusRequestTimeout:
			return writeError(c, status, "REQUEST_TIMEOUT", "request timeout")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			logUnexpected(c, err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
