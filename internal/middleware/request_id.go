package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID is a Fiber middleware that tags every response with an
// X-Request-Id header, generating one when the client did not send any.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// Store the ID in Fiber context for handlers and echo it back.
		c.Locals("request_id", requestID)
		c.Set("X-Request-Id", requestID)

		return c.Next()
	}
}
