package fiber

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/ctxlog"
)

// RequestLogger attaches a logger carrying the request id to the user
// context and logs one line per request. It expects the requestid middleware
// to run first.
func RequestLogger(base *slog.Logger, requestIDKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()

		logger := base
		if id, ok := c.Locals(requestIDKey).(string); ok && id != "" {
			logger = logger.With(slog.String("request_id", id))
		}
		c.SetUserContext(ctxlog.With(c.UserContext(), logger))

		err := c.Next()

		logger.Info("request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(started)),
		)
		return err
	}
}
