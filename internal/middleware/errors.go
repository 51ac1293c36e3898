package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/headlines/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escape handlers as {"error": <status text>}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Get().Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
