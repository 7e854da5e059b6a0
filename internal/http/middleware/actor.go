package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hrapi/internal/auth"
)

// ActorLocalKey is the key used to store the authenticated actor id in
// Fiber's context locals.
const ActorLocalKey = "actor_id"

// Actor resolves the acting user from a bearer token. Requests without a
// token stay anonymous; a token that fails validation is rejected. A nil
// manager disables authentication entirely.
func Actor(mgr *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if mgr == nil {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return fiber.NewError(fiber.StatusUnauthorized, "malformed authorization header")
		}

		claims, err := mgr.Validate(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(ActorLocalKey, claims.Subject)
		return c.Next()
	}
}

// ActorFromCtx returns the actor id set by Actor, or nil for anonymous requests.
func ActorFromCtx(c *fiber.Ctx) *string {
	if id, ok := c.Locals(ActorLocalKey).(string); ok && id != "" {
		return &id
	}
	return nil
}
