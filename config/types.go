package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Server         ServerConfig         `mapstructure:"server"`
	Authentication AuthenticationConfig `mapstructure:"authentication"`
	Email          EmailConfig          `mapstructure:"email"`
	SMS            SMSConfig            `mapstructure:"sms"`
	Password       PasswordConfig       `mapstructure:"password"`
	Observability  ObservabilityConfig  `mapstructure:"observability"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	S3             S3Config             `mapstructure:"s3"`
	Uploads        UploadsConfig        `mapstructure:"uploads"`
	I18n           I18nConfig           `mapstructure:"i18n"`
}

type DatabaseConfig struct {
	// URI is a MongoDB connection string, e.g. mongodb://localhost:27017.
	URI                   string `mapstructure:"uri"`
	Name                  string `mapstructure:"name"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
	MaxPoolSize           uint64 `mapstructure:"max_pool_size"`
	MinPoolSize           uint64 `mapstructure:"min_pool_size"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Environment    string          `mapstructure:"environment"`
	Domain         string          `mapstructure:"domain"`
	BodyLimitMB    int             `mapstructure:"body_limit_mb"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Max               int `mapstructure:"max"`
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type AuthenticationConfig struct {
	Paseto PasetoConfig `mapstructure:"paseto"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Reset  ResetConfig  `mapstructure:"reset"`
}

type PasetoConfig struct {
	LocalKeyHex      string `mapstructure:"local_key_hex"`
	Issuer           string `mapstructure:"issuer"`
	Audience         string `mapstructure:"audience"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
}

// AdminConfig seeds the single admin credential when the admins collection is empty.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Phone    string `mapstructure:"phone"`
}

type ResetConfig struct {
	// RequireOTP makes reset-password demand an SMS code sent by check-phone.
	RequireOTP    bool   `mapstructure:"require_otp"`
	OTPTTLMinutes int    `mapstructure:"otp_ttl_minutes"`
	PhoneRegion   string `mapstructure:"phone_region"`
}

type EmailConfig struct {
	Enabled  bool       `mapstructure:"enabled"`
	From     string     `mapstructure:"from"`
	NotifyTo []string   `mapstructure:"notify_to"`
	SMTP     SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SMSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	SMSIR   SMSIRConfig `mapstructure:"smsir"`
}

type SMSIRConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	TemplateID string `mapstructure:"template_id"`
}

type PasswordConfig struct {
	MemoryKiB     uint32 `mapstructure:"memory_kib"`
	Iterations    uint32 `mapstructure:"iterations"`
	Parallelism   uint8  `mapstructure:"parallelism"`
	SaltLength    uint32 `mapstructure:"salt_length"`
	KeyLength     uint32 `mapstructure:"key_length"`
	LowMemoryMode bool   `mapstructure:"low_memory_mode"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type UploadsConfig struct {
	MaxSizeMB int `mapstructure:"max_size_mb"`
	MaxWidth  int `mapstructure:"max_width"`
}

type I18nConfig struct {
	DefaultLocale string   `mapstructure:"default_locale"`
	Locales       []string `mapstructure:"locales"`
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Database.URI) == "" {
		errs = append(errs, errors.New("database.uri is required"))
	}
	if c.Database.Name == "" {
		c.Database.Name = "realty"
	}
	if len(strings.TrimSpace(c.Authentication.Paseto.LocalKeyHex)) != 64 {
		errs = append(errs, errors.New("authentication.paseto.local_key_hex must be 32 bytes hex"))
	}
	if c.Authentication.Paseto.AccessTTLMinutes < 0 {
		errs = append(errs, fmt.Errorf("authentication.paseto.access_ttl_minutes must not be negative, got %d", c.Authentication.Paseto.AccessTTLMinutes))
	}
	if c.Authentication.Reset.OTPTTLMinutes < 0 {
		errs = append(errs, fmt.Errorf("authentication.reset.otp_ttl_minutes must not be negative, got %d", c.Authentication.Reset.OTPTTLMinutes))
	}
	if c.S3.Enabled && c.S3.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket is required when s3 is enabled"))
	}

	return errors.Join(errs...)
}
