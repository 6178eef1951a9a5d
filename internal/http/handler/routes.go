package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"resumeapi/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Candidates service.CandidateService
	// DB is pinged by /health. Nil when candidates are kept in memory.
	DB *sql.DB
	// Gatherer backs /metrics. The route is skipped when nil.
	Gatherer prometheus.Gatherer
	// CreateLimiter guards POST /candidates when set.
	CreateLimiter fiber.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/openapi.yaml", OpenAPI())
	app.Get("/swagger/*", SwaggerUI())
	app.Get("/docs", Docs())

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", Metrics(d.Gatherer))
	}

	app.Get("/", Root(d.Candidates))

	create := []fiber.Handler{CreateCandidate(d.Candidates)}
	if d.CreateLimiter != nil {
		create = append([]fiber.Handler{d.CreateLimiter}, create...)
	}
	app.Post("/candidates", create...)
	app.Get("/candidates", ListCandidates(d.Candidates))
	app.Get("/candidates/:id", GetCandidate(d.Candidates))
	app.Delete("/candidates/:id", DeleteCandidate(d.Candidates))
}
