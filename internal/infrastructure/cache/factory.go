package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// Factory creates stores based on configuration
type Factory struct {
	cfg                   config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// an in-memory store. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the store and, when Redis is in use, its client so callers
// can share it. The client is nil for the in-memory store.
func (f *Factory) Create(ctx context.Context) (Store, *redis.Client, error) {
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory cache")
		return NewMemoryStore(), nil, nil
	}

	client, err := NewRedisClient(ctx, f.cfg)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, nil, err
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory cache",
			zap.String("addr", f.cfg.Addr()),
			zap.Error(err))
		return NewMemoryStore(), nil, nil
	}

	f.logger.Info("Using Redis cache", zap.String("addr", f.cfg.Addr()))
	return NewRedisStore(client, ""), client, nil
}
