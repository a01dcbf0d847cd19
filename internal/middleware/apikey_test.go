package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAPIKeyApp() *fiber.App {
	app := fiber.New()
	app.Use(APIKey([]string{"good-key", "other-key"}))
	app.Get("/secure", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAPIKeyMissing(t *testing.T) {
	app := newAPIKeyApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/secure", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAPIKeyInvalid(t *testing.T) {
	app := newAPIKeyApp()

	req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
	req.Header.Set(apiKeyHeader, "wrong-key")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected %d got %d", fiber.StatusForbidden, resp.StatusCode)
	}
}

func TestAPIKeyValid(t *testing.T) {
	app := newAPIKeyApp()

	for _, key := range []string{"good-key", "other-key"} {
		req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
		req.Header.Set(apiKeyHeader, key)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected %d got %d for key %s", fiber.StatusOK, resp.StatusCode, key)
		}
	}
}
