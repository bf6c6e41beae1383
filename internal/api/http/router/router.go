package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/handler"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/middleware"
	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/service/auth"
	"github.com/nguyenanhtu/realty_backend/internal/service/blog"
	"github.com/nguyenanhtu/realty_backend/internal/service/contact"
	"github.com/nguyenanhtu/realty_backend/internal/service/product"
	"github.com/nguyenanhtu/realty_backend/internal/service/project"
	"github.com/nguyenanhtu/realty_backend/internal/service/upload"
	"github.com/nguyenanhtu/realty_backend/pkg/database"
	"github.com/nguyenanhtu/realty_backend/pkg/i18n"
)

const probeTimeout = 2 * time.Second

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg       *config.Config
	DB        *database.DB  `optional:"true"`
	Redis     *redis.Client `optional:"true"`
	I18n      *i18n.Bundle
	Validator *contract.Validator

	AuthSvc    auth.Service
	BlogSvc    blog.Service
	ProductSvc product.Service
	ContactSvc contact.Service
	ProjectSvc project.Service
	UploadSvc  upload.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Locale prefixes are resolved before any route matches
	app.Use(middleware.Locale(r.p.I18n, r.p.AuthSvc))
	adminRequired := middleware.AdminRequired(r.p.AuthSvc)

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc, r.p.Validator, r.p.Cfg.IsProduction())
	blogH := handler.NewBlogHandler(r.p.BlogSvc)
	productH := handler.NewProductHandler(r.p.ProductSvc)
	contactH := handler.NewContactHandler(r.p.ContactSvc, r.p.I18n.Default())
	projectH := handler.NewProjectHandler(r.p.ProjectSvc)
	uploadH := handler.NewUploadHandler(r.p.UploadSvc)

	api := app.Group("/api")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, adminRequired)
	r.registerBlogRoutes(api, blogH, adminRequired)
	r.registerProductRoutes(api, productH, adminRequired)
	r.registerContactRoutes(api, contactH, adminRequired)
	r.registerProjectRoutes(api, projectH, adminRequired)
	r.registerUploadRoutes(api, uploadH, adminRequired)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.ready(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether MongoDB and Redis answer a ping.
func (r *Router) ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if r.p.DB != nil {
		if err := r.p.DB.Ping(ctx); err != nil {
			return false
		}
	}
	if r.p.Redis != nil {
		if err := r.p.Redis.Ping(ctx).Err(); err != nil {
			return false
		}
	}
	return true
}
