package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nguyenanhtu/realty_backend/config"
)

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// Options maps central config to client options, filling pool and timeout defaults.
func Options(c config.RedisConfig) *goredis.Options {
	opts := &goredis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  seconds(c.DialTimeoutSeconds, 5),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, 3),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, 3),
	}
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		opts.MinIdleConns = c.MinIdleConns
	}
	return opts
}

// NewRedisFromCentral connects and pings. Sessions and reset codes live here,
// so the server refuses to start without it.
func NewRedisFromCentral(ctx context.Context, c config.RedisConfig) (*goredis.Client, error) {
	if c.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	rdb := goredis.NewClient(Options(c))
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
