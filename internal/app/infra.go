package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/pkg/database"
	"github.com/nguyenanhtu/realty_backend/pkg/email"
	"github.com/nguyenanhtu/realty_backend/pkg/i18n"
	"github.com/nguyenanhtu/realty_backend/pkg/observability"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
	redispkg "github.com/nguyenanhtu/realty_backend/pkg/redis"
	s3pkg "github.com/nguyenanhtu/realty_backend/pkg/s3"
	"github.com/nguyenanhtu/realty_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideMongo),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideEvents),
	fx.Provide(ProvideS3Client),
	fx.Provide(ProvideI18n),
	fx.Provide(ProvideValidator),
	fx.Provide(ProvidePasetoManager),
)

func ProvideMongo(lc fx.Lifecycle, cfg *config.Config) (*database.DB, error) {
	db, err := database.NewFromCentral(context.Background(), cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing mongodb connection")
			return db.Close(ctx)
		},
	})
	return db, nil
}

func ProvideDatabase(db *database.DB) *mongo.Database {
	return db.Database()
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS, slog.Default())
}

// ProvideS3Client returns nil when uploads are not configured; the upload
// service then answers 503.
func ProvideS3Client(cfg *config.Config) (*s3pkg.Client, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}
	return s3pkg.New(context.Background(), cfg.S3)
}

func ProvideI18n(cfg *config.Config) (*i18n.Bundle, error) {
	return i18n.New(cfg.I18n.DefaultLocale, cfg.I18n.Locales)
}

func ProvideValidator() (*contract.Validator, error) {
	return contract.New()
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Init(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideEvents depends on the provider so the counters bind to the real
// meter provider once Init has installed it.
func ProvideEvents(_ *observability.Provider) *observability.Events {
	return observability.NewEvents()
}
