package api

import (
	"context"
	"time"

	"github.com/bilgisen/headlines/internal/logger"
	"github.com/bilgisen/headlines/internal/middleware"
	"github.com/bilgisen/headlines/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	welcomeMessage      = "Welcome to the News API! Go to /api/get-top-headline to fetch top headline."
	headlineFailMessage = "Failed to fetch headline"
	headlineQueryLocal  = "headlineQuery"
)

// HeadlineBuilder produces the translated/original headline pair.
type HeadlineBuilder interface {
	BuildHeadlineResponse(ctx context.Context, language string) (*models.HeadlineResponse, error)
}

// HeadlineQuery is the accepted query string of GET /api/get-top-headline.
type HeadlineQuery struct {
	Lang string `query:"lang" validate:"omitempty,max=32,language"`
}

type Handlers struct {
	builder HeadlineBuilder
	log     *zerolog.Logger
}

func NewHandlers(builder HeadlineBuilder, log *zerolog.Logger) *Handlers {
	return &Handlers{
		builder: builder,
		log:     logger.Or(log),
	}
}

// Welcome handles GET /
func (h *Handlers) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": welcomeMessage,
	})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetTopHeadline handles GET /api/get-top-headline
func (h *Handlers) GetTopHeadline(c *fiber.Ctx) error {
	query := middleware.Query[HeadlineQuery](c, headlineQueryLocal)

	resp, err := h.builder.BuildHeadlineResponse(c.UserContext(), query.Lang)
	if err != nil {
		h.log.Error().
			Err(err).
			Str("ip", c.IP()).
			Str("lang", query.Lang).
			Msg("Error building headline response")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": headlineFailMessage,
		})
	}

	return c.JSON(resp)
}
