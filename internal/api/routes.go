package api

import (
	"time"

	"github.com/bilgisen/headlines/internal/cache"
	"github.com/bilgisen/headlines/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// ServerConfig is the HTTP-facing part of the application config.
type ServerConfig struct {
	HTTPTimeout time.Duration
	CORSOrigins string
}

// NewServer builds the fiber app with global middleware and all routes.
// limiter may be nil to disable rate limiting.
func NewServer(cfg ServerConfig, handlers *Handlers, limiter cache.Limiter, log *zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(middleware.LoggerConfig{Logger: log}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "" && cfg.CORSOrigins != "*",
	}))

	SetupRoutes(app, handlers, limiter, log)
	return app
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, limiter cache.Limiter, log *zerolog.Logger) {
	app.Get("/", handlers.Welcome)
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter, log))
	}

	api.Get("/get-top-headline",
		middleware.ValidateQuery[HeadlineQuery](headlineQueryLocal),
		handlers.GetTopHeadline,
	)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
