// Package cache holds the read-through lookup cache placed in front of the
// catalog repositories. Only lookups by identifier are cached since names
// are mutable.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/catalog/internal/infrastructure/config"
)

// ErrMiss is returned by Store.Get when the key is absent or expired
var ErrMiss = errors.New("cache: miss")

// Store is a byte-oriented key/value store with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open creates the store selected by cfg.Backend. The memory store sweeps
// expired entries once per TTL.
func Open(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return NewInMemoryStore(cfg.TTL), nil
	case config.CacheBackendRedis, "":
		return NewRedisStore(ctx, cfg)
	}
	return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
}
