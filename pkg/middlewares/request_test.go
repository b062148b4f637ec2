package middlewares

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(RequestIDMiddleware(), AccessLogMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})
	return app
}

func TestRequestID_Propagates(t *testing.T) {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-123")

	resp, err := newApp().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-123", string(body))
	assert.Equal(t, "req-123", resp.Header.Get(HeaderRequestID))
}

func TestRequestID_Generated(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.NotEmpty(t, string(body))
	assert.Equal(t, string(body), resp.Header.Get(HeaderRequestID))
}
