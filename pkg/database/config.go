package database

import (
	"time"

	"github.com/nguyenanhtu/realty_backend/config"
)

// Config holds MongoDB connection settings
type Config struct {
	URI  string
	Name string

	ConnectTimeoutSeconds int
	MaxPoolSize           uint64
	MinPoolSize           uint64
}

// ConnectTimeout returns the connect/ping timeout as a duration
func (c Config) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// DefaultConfig returns sensible defaults for database configuration
func DefaultConfig() Config {
	return Config{
		Name:                  "realty",
		ConnectTimeoutSeconds: 10,
		MaxPoolSize:           50,
	}
}

// FromCentralConfig converts central config.DatabaseConfig to package Config
func FromCentralConfig(c config.DatabaseConfig) Config {
	cfg := DefaultConfig()
	cfg.URI = c.URI
	if c.Name != "" {
		cfg.Name = c.Name
	}
	if c.ConnectTimeoutSeconds > 0 {
		cfg.ConnectTimeoutSeconds = c.ConnectTimeoutSeconds
	}
	if c.MaxPoolSize > 0 {
		cfg.MaxPoolSize = c.MaxPoolSize
	}
	cfg.MinPoolSize = c.MinPoolSize
	return cfg
}
