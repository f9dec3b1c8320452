package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health and ping endpoints are probed constantly; logging them is noise.
var filteredPaths = map[string]struct{}{
	"/v1/ping":         {},
	"/v1/health":       {},
	"/v1/health/ready": {},
	"/v1/health/live":  {},
}

// RequestLogger logs the start and completion of every request outside
// the filtered set, with the final status and wall-clock duration in
// milliseconds. Completions with status >= 400 log at error level.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if _, skip := filteredPaths[path]; skip {
			return c.Next()
		}

		method := c.Method()
		requestID, _ := c.Locals("requestid").(string)
		slog.Info("request started", "method", method, "path", path, "request_id", requestID)

		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Run the error handler now so the completion line sees the
			// final status code.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		durationMs := time.Since(start).Milliseconds()
		attrs := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", durationMs,
			"request_id", requestID,
		}
		if status >= fiber.StatusBadRequest {
			slog.Error("request completed", attrs...)
		} else {
			slog.Info("request completed", attrs...)
		}
		return nil
	}
}
