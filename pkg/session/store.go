package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/cache"
)

// Store holds the process-wide authenticated session.
// It is passed explicitly to whoever needs it instead of living in a global.
type Store interface {
	// Set replaces the current session.
	Set(ctx context.Context, s *Session) error

	// Current returns the current session.
	// Returns ErrNotFound if none is set and ErrExpired if it lapsed.
	Current(ctx context.Context) (*Session, error)

	// Clear removes the current session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

const currentKey = "current"

// CacheStore keeps the session in a cache entry whose TTL follows the
// session expiry. One store holds one session.
type CacheStore struct {
	cache cache.Cache[Session]
	key   string
}

// NewCacheStore creates a Store over c. The optional key separates several
// stores sharing one backend (e.g. one Redis per device id).
func NewCacheStore(c cache.Cache[Session], key ...string) *CacheStore {
	k := currentKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	return &CacheStore{cache: c, key: k}
}

// Set stores s until its expiry, or indefinitely when ExpiresAt is zero.
func (st *CacheStore) Set(ctx context.Context, s *Session) error {
	if !s.IsAuthenticated() {
		return ErrInvalidSession
	}

	ttl := time.Duration(-1)
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			return ErrExpired
		}
	}

	if err := st.cache.Set(ctx, st.key, *s, ttl); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}
	return nil
}

// Current returns the stored session.
func (st *CacheStore) Current(ctx context.Context) (*Session, error) {
	s, err := st.cache.Get(ctx, st.key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if s.IsExpired() {
		_ = st.cache.Delete(ctx, st.key)
		return nil, ErrExpired
	}
	return &s, nil
}

// Clear removes the stored session.
func (st *CacheStore) Clear(ctx context.Context) error {
	if err := st.cache.Delete(ctx, st.key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

var _ Store = (*CacheStore)(nil)
