package app

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/internal/service/auth"
	"github.com/nguyenanhtu/realty_backend/internal/service/blog"
	"github.com/nguyenanhtu/realty_backend/internal/service/contact"
	"github.com/nguyenanhtu/realty_backend/internal/service/product"
	"github.com/nguyenanhtu/realty_backend/internal/service/project"
	"github.com/nguyenanhtu/realty_backend/internal/service/upload"
	"github.com/nguyenanhtu/realty_backend/pkg/email"
	"github.com/nguyenanhtu/realty_backend/pkg/i18n"
	"github.com/nguyenanhtu/realty_backend/pkg/imagecodec"
	"github.com/nguyenanhtu/realty_backend/pkg/observability"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
	s3pkg "github.com/nguyenanhtu/realty_backend/pkg/s3"
	"github.com/nguyenanhtu/realty_backend/pkg/sms"
	"github.com/nguyenanhtu/realty_backend/pkg/util/otp"
	"github.com/nguyenanhtu/realty_backend/pkg/util/password"
)

// ServiceModule provides the repositories and application services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		repo.NewBlogRepo,
		repo.NewProductRepo,
		repo.NewContactRepo,
		repo.NewProjectRepo,
		repo.NewAdminRepo,
		ProvideBlogService,
		ProvideProductService,
		ProvideProjectService,
		ProvideContactService,
		ProvideAuthService,
		ProvideUploadService,
	),
)

func ProvideBlogService(r *repo.BlogRepo, v *contract.Validator) blog.Service {
	return blog.New(r, v)
}

func ProvideProductService(r *repo.ProductRepo, v *contract.Validator) product.Service {
	return product.New(r, v)
}

func ProvideProjectService(r *repo.ProjectRepo, v *contract.Validator) project.Service {
	return project.New(r, v)
}

func ProvideContactService(
	r *repo.ContactRepo,
	v *contract.Validator,
	mailer *email.Client,
	tr *i18n.Bundle,
	events *observability.Events,
	cfg *config.Config,
) contact.Service {
	return contact.New(contact.Deps{
		Store:       r,
		Validator:   v,
		Mailer:      mailer,
		Translator:  tr,
		Log:         slog.Default(),
		Events:      events,
		PhoneRegion: cfg.Authentication.Reset.PhoneRegion,
	})
}

func ProvideAuthService(
	admins *repo.AdminRepo,
	rdb *redis.Client,
	smsCli *sms.Client,
	paseto *pasetotoken.Manager,
	events *observability.Events,
	cfg *config.Config,
) auth.Service {
	return NewAuthService(cfg, admins, rdb, paseto, smsCli, events)
}

// NewAuthService is shared with the CLI, which seeds the admin without the
// fx graph.
func NewAuthService(
	cfg *config.Config,
	admins auth.AdminStore,
	rdb *redis.Client,
	paseto *pasetotoken.Manager,
	smsCli sms.Sender,
	events auth.Recorder,
) auth.Service {
	otpTTL := time.Duration(cfg.Authentication.Reset.OTPTTLMinutes) * time.Minute
	return auth.New(auth.Deps{
		Admins: admins,
		Redis:  rdb,
		Paseto: paseto,
		OTP:    otp.NewStore(rdb, otpTTL),
		SMS:    smsCli,
		Hasher: password.NewHasher(password.ParamsFromConfig(cfg.Password)),
		Reset:  cfg.Authentication.Reset,
		Log:    slog.Default(),
		Events: events,
	})
}

func ProvideUploadService(s3c *s3pkg.Client, cfg *config.Config) upload.Service {
	// keep the interface nil, not a typed nil pointer, when S3 is off
	var store upload.Uploader
	if s3c != nil {
		store = s3c
	}
	maxBytes := int64(cfg.Uploads.MaxSizeMB) << 20
	return upload.New(store, imagecodec.New(maxBytes, cfg.Uploads.MaxWidth))
}

