package cache

import (
	"strings"
	"time"
)

// Option configures a cache.
type Option func(*options)

type options struct {
	prefix          string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

func defaultOptions() *options {
	return &options{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the expiration used when Set or Add get a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the in-memory janitor drops expired
// entries. Zero disables the janitor. Ignored by Redis.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithPrefix namespaces Redis keys as "{prefix}:{key}". A trailing colon on
// prefix is dropped. Ignored in memory.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = strings.TrimRight(prefix, ":")
	}
}
