// Package cache provides a small generic TTL cache with in-memory and
// Redis implementations.
//
// It backs two pieces of sign-in state: the authenticated session
// (pkg/session) and the set of consumed Apple nonces (pkg/nonce). Both
// need expiring keys and an atomic insert-if-absent, nothing more.
//
// # TTL semantics
//
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's default TTL
//   - Negative: entry never expires
//
// # Usage
//
//	c := cache.NewMemory[session.Session](cache.WithDefaultTTL(time.Hour))
//	defer c.Close()
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	rc := cache.NewRedis[session.Session](client, nil, cache.WithPrefix("authbridge:session"))
package cache
