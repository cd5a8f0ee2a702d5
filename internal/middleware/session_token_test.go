package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coinramp/coinramp/internal/auth"
	"github.com/coinramp/coinramp/internal/config"
)

func newProtectedApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(SessionToken(config.Config{SessionTokenSecret: secret}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.JSON(fiber.Map{"user_id": uid})
	})
	return app
}

func TestSessionTokenRejectsMissingHeader(t *testing.T) {
	app := newProtectedApp(t, "secret")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestSessionTokenAcceptsValidToken(t *testing.T) {
	app := newProtectedApp(t, "secret")

	token, err := auth.SignHS256(map[string]any{
		"sub": "user-1",
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}

func TestSessionTokenRejectsExpiredAndForged(t *testing.T) {
	app := newProtectedApp(t, "secret")

	expired, err := auth.SignHS256(map[string]any{
		"sub": "user-1",
		"exp": float64(time.Now().Add(-time.Minute).Unix()),
	}, []byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	forged, err := auth.SignHS256(map[string]any{"sub": "user-1"}, []byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	for name, token := range map[string]string{"expired": expired, "forged": forged} {
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected %d got %d", name, fiber.StatusUnauthorized, resp.StatusCode)
		}
	}
}
