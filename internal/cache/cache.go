package cache

import (
	"context"
	"errors"
	"time"
)

// Store is a TTL key/value store holding JSON-encodable values
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
