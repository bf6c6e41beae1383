package http

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/middleware"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/router"
	"github.com/nguyenanhtu/realty_backend/pkg/observability"
)

const defaultBodyLimitMB = 20

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := New(p.Cfg, p.Redis, p.OTel != nil && p.Cfg.Observability.Tracing.Enabled)
	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// New builds the app with global middleware but no routes. Tests call it
// with a nil Redis client, which skips the limiter.
func New(cfg *config.Config, rdb *redis.Client, traced bool) *fiber.App {
	bodyLimit := cfg.Server.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimitMB
	}
	app := fiber.New(fiber.Config{
		AppName:   cfg.Observability.ServiceName,
		BodyLimit: bodyLimit << 20,
	})

	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if traced {
		app.Use(observability.FiberMiddleware())
	}

	if cfg.IsProduction() {
		app.Use(helmet.New())
		if rdb != nil {
			app.Use(middleware.NewLimiterWithRedis(rdb, cfg.Server.RateLimit))
		}
	}
	if cfg.Server.CORS.Enabled {
		// the admin UI sends the token cookie, so origins must be explicit
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORS.AllowOrigins,
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
		}))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:requestid}] ${method} ${url} ${status} ${latency}\n",
	}))

	return app
}
