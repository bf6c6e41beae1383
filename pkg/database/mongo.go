package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nguyenanhtu/realty_backend/config"
)

var ErrMissingURI = errors.New("database uri is empty")

// DB owns the process-wide MongoDB client. It is created once by the entry
// point and shared by every repository; the driver pools connections internally.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// NewFromCentral creates a connected DB from central config
func NewFromCentral(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	return New(ctx, FromCentralConfig(cfg))
}

func New(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout())
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, db: client.Database(cfg.Name), cfg: cfg}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) Database() *mongo.Database {
	return d.db
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Config() Config {
	return d.cfg
}

// Ping checks if the database connection is alive
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.ConnectTimeout())
	defer cancel()
	return d.client.Ping(ctx, readpref.Primary())
}
