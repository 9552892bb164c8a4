package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by Redis.
// Values are serialized with the configured Marshaler (JSON by default).
type Redis[V any] struct {
	client    redis.UniversalClient
	opts      *options
	marshaler Marshaler[V]
}

// NewRedis creates a Redis-backed cache.
// The client should come from pkg/redis.Open; its lifecycle stays with the caller.
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...Option) *Redis[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Redis[V]{
		client:    client,
		opts:      o,
		marshaler: m,
	}
}

// Get retrieves a value by key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

// Set stores a value with the given TTL.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, r.ttl(ttl)).Err()
}

// Add stores a value only if the key is absent, using SET NX.
func (r *Redis[V]) Add(ctx context.Context, key string, value V, ttl time.Duration) (bool, error) {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, r.key(key), data, r.ttl(ttl)).Result()
}

// Delete removes a key from Redis.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; the client is closed by its owner.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

// ttl maps cache TTL semantics onto Redis, where 0 means no expiration.
func (r *Redis[V]) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	return max(ttl, 0)
}

var _ Cache[any] = (*Redis[any])(nil)
