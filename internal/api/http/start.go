package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/router"
	"github.com/nguyenanhtu/realty_backend/internal/app"
)

// Start blocks until SIGINT/SIGTERM, then stops the app within timeout.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,

		// NewServer registers the listener hooks; invoking it forces construction.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	).Run()
}
