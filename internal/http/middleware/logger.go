package middleware

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"resumeapi/internal/logger"
)

// Logger is a middleware that writes one JSON access line per request through l.
// Fields: request_id (set by RequestID), method, path, status and latency in milliseconds.
func Logger(l *slog.Logger) fiber.Handler {
	if l == nil {
		l = logger.Discard()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		l.InfoContext(c.UserContext(), "http_request",
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", statusOf(c, err),
			"latency", float64(time.Since(start).Microseconds())/1000,
		)
		return err
	}
}

// LoggerWithWriter is Logger with a fresh info-level logger on w, timestamps rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logger.New(w, "info", loc))
}

// statusOf returns the status the client will see. Errors returned up the chain
// have not been rendered by the error handler yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
