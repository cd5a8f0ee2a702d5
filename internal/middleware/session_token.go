package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coinramp/coinramp/internal/auth"
	"github.com/coinramp/coinramp/internal/config"
)

// SessionToken validates bearer tokens minted by the authentication
// collaborator and stashes the subject for downstream handlers.
func SessionToken(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.SessionTokenSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		if err := auth.ValidateExpiry(claims, time.Now()); err != nil {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return fiber.NewError(http.StatusUnauthorized, "token missing subject")
		}

		c.Locals("user_id", sub)
		return c.Next()
	}
}
