package auth_test

import (
	"net/http/httptest"
	"testing"

	"gearsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: apiKey}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAuth(t *testing.T) {
	t.Run("ValidHeader", func(t *testing.T) {
		app := setupApp("secret")

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-API-Key", "secret")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("ValidQueryParam", func(t *testing.T) {
		app := setupApp("secret")

		req := httptest.NewRequest("GET", "/ping?api_key=secret", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("WrongKey", func(t *testing.T) {
		app := setupApp("secret")

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-API-Key", "not-the-secret")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("MissingKey", func(t *testing.T) {
		app := setupApp("secret")

		req := httptest.NewRequest("GET", "/ping", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("EmptyConfigDisablesAuth", func(t *testing.T) {
		app := setupApp("")

		req := httptest.NewRequest("GET", "/ping", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
