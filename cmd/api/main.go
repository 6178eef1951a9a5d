package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"resumeapi/internal/config"
	"resumeapi/internal/database"
	"resumeapi/internal/database/migration"
	handlers "resumeapi/internal/http/handler"
	"resumeapi/internal/http/middleware"
	"resumeapi/internal/logger"
	"resumeapi/internal/otel"
	"resumeapi/internal/repository"
	"resumeapi/internal/repository/memory"
	"resumeapi/internal/repository/postgres"
	"resumeapi/internal/service"
	"resumeapi/internal/storage"
	"resumeapi/internal/validation"
)

const (
	shutdownTimeout = 10 * time.Second
	// Multipart framing on top of the file itself. The size decision is left to the service.
	bodyHeadroom = 1 << 20
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	log := logger.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) error {
	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	repo, db, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register service metrics: %w", err)
	}
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	svc := service.NewCandidateService(store, repo,
		service.WithLogger(log),
		service.WithRules(uploadRules(cfg.Upload)),
		service.WithMetrics(metrics),
	)

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             int(cfg.Upload.MaxBytes) + bodyHeadroom,
		ReadTimeout:           timeout,
		WriteTimeout:          timeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Candidates:    svc,
		DB:            db,
		Gatherer:      reg,
		CreateLimiter: middleware.RateLimiter(cfg.RateLimit.Max, time.Duration(cfg.RateLimit.WindowSec)*time.Second),
	})

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server_listening",
			"addr", addr,
			"store_backend", cfg.StoreBackend,
			"storage_backend", cfg.StorageBackend,
		)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_shutdown")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	return g.Wait()
}

// openRepository returns the candidate store. db is non-nil only for the postgres backend.
func openRepository(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (repository.CandidateRepository, *sql.DB, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memory.NewCandidateMemory(), nil, nil
	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewCandidatePostgres(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func openStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		st, err := storage.NewLocal(cfg.Upload.Dir)
		if err != nil {
			return nil, err
		}
		return st, st.Ensure(ctx)
	case config.StorageMinIO:
		st, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

func uploadRules(c config.UploadConfig) validation.Rules {
	rules := validation.DefaultRules()
	if exts := validation.ParseExtensions(c.AllowedExtensions); len(exts) > 0 {
		rules.AllowedExtensions = exts
	}
	if c.MaxBytes > 0 {
		rules.MaxFileSize = c.MaxBytes
	}
	return rules
}
