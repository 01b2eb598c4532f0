package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
	ensureSchemaTimeout = 10 * time.Second
)

// SetupApp loads the configuration from the environment, connects to the configured services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	engine, err := othello.NewEngine(cfg.Search.BoardRows, cfg.Search.BoardCols)
	if err != nil {
		slog.Error("Invalid board size", "error", err)
		os.Exit(1)
	}

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	reports := repository.NewReportRepositoryFromServices(services)
	if reports.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), ensureSchemaTimeout)
		err = reports.EnsureSchema(ctx)
		cancel()

		if err != nil {
			slog.Error("Failed to create database schema", "error", err)
			os.Exit(1)
		}
	}

	return BuildApp(cfg, services, engine), cfg
}

// BuildApp creates the Fiber app serving all routes with the given dependencies.
func BuildApp(cfg *config.ServerConfig, services *services.Services, engine *othello.Engine) *fiber.App {
	// Create Fiber app
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup engine, connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("engine", engine)
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
