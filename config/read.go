package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	// A local .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. REALTY_DATABASE_URI overrides database.uri
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		// Docker deployments run from env only; the URI is the one key we cannot default.
		if os.Getenv(constants.EnvPrefix+"_DATABASE_URI") == "" {
			return nil, fmt.Errorf("config file not found in %q and %s_DATABASE_URI is not set", configPath, constants.EnvPrefix)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
// even when the config file omits the section.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.domain", "localhost")
	v.SetDefault("server.body_limit_mb", 20)
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allow_origins", []string{})
	v.SetDefault("server.cors.allow_credentials", true)
	v.SetDefault("server.rate_limit.max", 60)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)

	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "realty")
	v.SetDefault("database.connect_timeout_seconds", 10)
	v.SetDefault("database.max_pool_size", 50)
	v.SetDefault("database.min_pool_size", 0)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("authentication.paseto.local_key_hex", "")
	v.SetDefault("authentication.paseto.issuer", constants.ServiceName)
	v.SetDefault("authentication.paseto.audience", "admin")
	v.SetDefault("authentication.paseto.access_ttl_minutes", 60)
	v.SetDefault("authentication.admin.username", "admin")
	v.SetDefault("authentication.admin.password", "")
	v.SetDefault("authentication.admin.phone", "")
	v.SetDefault("authentication.reset.require_otp", true)
	v.SetDefault("authentication.reset.otp_ttl_minutes", 5)
	v.SetDefault("authentication.reset.phone_region", "VN")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.from", "")
	v.SetDefault("email.notify_to", []string{})
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", false)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("sms.enabled", false)
	v.SetDefault("sms.smsir.api_key", "")
	v.SetDefault("sms.smsir.secret_key", "")
	v.SetDefault("sms.smsir.template_id", "")

	v.SetDefault("password.memory_kib", 64*1024)
	v.SetDefault("password.iterations", 3)
	v.SetDefault("password.parallelism", 2)
	v.SetDefault("password.salt_length", 16)
	v.SetDefault("password.key_length", 32)
	v.SetDefault("password.low_memory_mode", false)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.ServiceName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.otlp_insecure", true)
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", false)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.file.enabled", false)
	v.SetDefault("logging.output.file.path", "logs/app.log")
	v.SetDefault("logging.output.file.max_size_mb", 50)
	v.SetDefault("logging.output.file.max_backups", 5)
	v.SetDefault("logging.output.file.max_age_days", 14)
	v.SetDefault("logging.output.file.compress", true)
	v.SetDefault("logging.output.loki.enabled", false)
	v.SetDefault("logging.output.loki.endpoint", "")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.public_base_url", "")

	v.SetDefault("uploads.max_size_mb", 5)
	v.SetDefault("uploads.max_width", 1920)

	v.SetDefault("i18n.default_locale", "vi")
	v.SetDefault("i18n.locales", []string{"vi", "en"})
}
