// Package rayid assigns a unique request ID to every incoming request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray ID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key under which the ray ID is stored.
const LocalsKey = "ray_id"

// New returns a middleware that generates a ray ID per request, stores it in
// the request locals and echoes it in the response headers. An incoming
// X-Ray-ID header is reused so upstream callers can propagate their own IDs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
