package nonce

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/cache"
)

// DefaultTrackerTTL bounds how long a consumed nonce is remembered.
// Apple identity tokens are short lived, so a replay after this window
// fails on token expiry instead.
const DefaultTrackerTTL = 10 * time.Minute

// Tracker remembers consumed nonces by digest.
type Tracker struct {
	store cache.Cache[bool]
	ttl   time.Duration
}

// NewTracker creates a Tracker over the given cache.
// A non-positive ttl selects DefaultTrackerTTL.
func NewTracker(store cache.Cache[bool], ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTrackerTTL
	}
	return &Tracker{store: store, ttl: ttl}
}

// Consume marks raw as used. It returns ErrReused if raw was consumed before.
// Only the digest is stored.
func (t *Tracker) Consume(ctx context.Context, raw string) error {
	if raw == "" {
		return ErrEmpty
	}

	ok, err := t.store.Add(ctx, Hash(raw), true, t.ttl)
	if err != nil {
		return fmt.Errorf("nonce: record consumption: %w", err)
	}
	if !ok {
		return ErrReused
	}
	return nil
}
