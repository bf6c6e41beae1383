package observability

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenanhtu/realty_backend/config"
)

func TestFromCentralConfig(t *testing.T) {
	c := &config.Config{}
	c.Server.Environment = "production"
	c.Observability.ServiceName = "realty_backend"
	c.Observability.Tracing.Enabled = true
	c.Observability.Tracing.SamplingRate = 0.5

	got := FromCentralConfig(c)
	assert.Equal(t, "production", got.Environment)
	assert.True(t, got.TracingEnabled)
	assert.Equal(t, 0.5, got.SamplingRate)
}

func TestMiddleware_TraceHeader(t *testing.T) {
	p, err := Init(context.Background(), Config{ServiceName: "test", TracingEnabled: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	app := fiber.New()
	app.Use(FiberMiddleware())
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get("X-Trace-Id"), 32)

	// counters never panic, with or without a configured provider
	ev := NewEvents()
	ev.ContactSubmitted(context.Background(), true)
	ev.LoginAttempt(context.Background(), false)
}
