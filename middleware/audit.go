package middleware

import (
	"time"

	"dj-booking-sync/logger"
	"dj-booking-sync/utils"

	"github.com/gofiber/fiber/v2"
)

// AuditLog records every request that reaches the wrapped routes, including rejected ones.
func AuditLog(audit *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		entry := utils.CreateSanitizedLogEntry(c)
		entry.DurationMs = time.Since(start).Milliseconds()
		audit.Log(entry)
		return nil
	}
}
