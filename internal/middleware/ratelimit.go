package middleware

import (
	"github.com/bilgisen/headlines/internal/cache"
	"github.com/bilgisen/headlines/internal/logger"
	"github.com/bilgisen/headlines/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RateLimit rejects clients that exceed the limiter's budget with 429.
// A limiter error lets the request through.
func RateLimit(limiter cache.Limiter, log *zerolog.Logger) fiber.Handler {
	log = logger.Or(log)

	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Allow(c.UserContext(), utils.ClientKey(c.IP()))
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("Rate limiter unavailable, allowing request")
			return c.Next()
		}

		if !allowed {
			log.Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
			})
		}

		return c.Next()
	}
}
