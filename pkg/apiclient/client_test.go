package apiclient

import (
	"context"
	"net"
	"testing"
	"time"

	errprocess "operator_console/pkg/err"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, setup func(app *fiber.App)) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setup(app)

	ln, listenErr := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, listenErr)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestGetJSON(t *testing.T) {
	var gotRequestID string
	baseURL := startServer(t, func(app *fiber.App) {
		app.Get("/api/items", func(c *fiber.Ctx) error {
			gotRequestID = c.Get(HeaderRequestID)
			return c.JSON([]map[string]any{{"email": "a@b.com"}})
		})
	})

	var out []struct {
		Email string `json:"email"`
	}
	require.NoError(t, New(baseURL, time.Second).GetJSON(context.Background(), "/api/items", &out))
	assert.Equal(t, "a@b.com", out[0].Email)
	assert.NotEmpty(t, gotRequestID)
}

func TestPostAck(t *testing.T) {
	baseURL := startServer(t, func(app *fiber.App) {
		app.Post("/api/echo", func(c *fiber.Ctx) error {
			var req struct {
				Email string `json:"email"`
			}
			if parseErr := c.BodyParser(&req); parseErr != nil {
				return parseErr
			}
			return c.JSON(Ack{Success: req.Email != "", Message: "got " + req.Email})
		})
	})

	ack, postErr := New(baseURL, time.Second).PostAck(context.Background(), "/api/echo", map[string]string{"email": "x@y.z"})
	require.NoError(t, postErr)
	assert.True(t, ack.Success)
	assert.Equal(t, "got x@y.z", ack.Message)
}

func TestNon2xxIsFailure(t *testing.T) {
	baseURL := startServer(t, func(app *fiber.App) {
		app.Get("/api/broken", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": true, "message": "db locked"})
		})
	})

	callErr := New(baseURL, time.Second).GetJSON(context.Background(), "/api/broken", nil)
	require.Error(t, callErr)

	var se *StatusError
	require.ErrorAs(t, callErr, &se)
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, "db locked", se.Message)

	// errprocess 會優先使用 server message
	assert.EqualError(t, errprocess.Remote("test", callErr, "fallback"), "db locked")
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callErr := New("http://127.0.0.1:1", time.Second).GetJSON(ctx, "/api/x", nil)
	assert.ErrorIs(t, callErr, context.Canceled)
}

func TestConnectionRefused(t *testing.T) {
	ln, listenErr := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, listenErr)
	addr := ln.Addr().String()
	ln.Close()

	callErr := New("http://"+addr, 500*time.Millisecond).GetJSON(context.Background(), "/api/x", nil)
	assert.Error(t, callErr)
}
