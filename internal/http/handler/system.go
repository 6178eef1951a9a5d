package handler

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var openAPIDoc []byte

// OpenAPI serves the embedded OpenAPI document.
func OpenAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(openAPIDoc)
	}
}

// SwaggerUI serves the bundled Swagger UI assets, reading the embedded document.
func SwaggerUI() fiber.Handler {
	return swagger.New(swagger.Config{
		URL:   "/openapi.yaml",
		Title: "Resume API",
	})
}

// Docs sends browsers to the Swagger UI index.
func Docs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusFound)
	}
}

// HealthCheck reports {"status":"ok"}. When db is set it must answer a ping within two seconds.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

// LivenessProbe answers 200 with an empty body as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics exposes g in the Prometheus text format.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
