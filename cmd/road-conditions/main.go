package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/road-conditions/internal/api/http"
	"github.com/i474232898/road-conditions/internal/config"
	"github.com/i474232898/road-conditions/internal/logging"
	"github.com/i474232898/road-conditions/internal/scheduler"
	"github.com/i474232898/road-conditions/internal/sensors"
	"github.com/i474232898/road-conditions/internal/sensors/upstream"
	"github.com/i474232898/road-conditions/internal/store"
)

const appName = "road-conditions"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logging.New(os.Stdout, cfg, appName)
	slog.SetDefault(lg)

	// Shared HTTP client for upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	source := upstream.NewSocrataSource(httpClient, cfg.SensorAPIURL,
		upstream.WithAppToken(cfg.AppToken),
		upstream.WithLocation(cfg.Location),
	)

	// Single-slot cache in front of the upstream.
	service := sensors.NewService(store.NewMemoryStore(), source,
		sensors.WithBucketSize(cfg.BucketSize),
		sensors.WithFetchWindow(cfg.FetchWindow),
		sensors.WithLocation(cfg.Location),
		sensors.WithLogger(lg),
	)

	if cfg.WarmCache {
		sched := scheduler.New(cfg.BucketSize, service, lg)
		if err := sched.Start(); err != nil {
			lg.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		lg.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("error during shutdown", "error", err)
	}
}
