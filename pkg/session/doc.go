// Package session models the authenticated session established after a
// successful credential exchange and the store that holds it.
//
// The store is an explicit object with Set, Current and Clear rather than
// ambient global state. CacheStore works over any cache.Cache, so the same
// code runs on the in-memory cache or on Redis:
//
//	store := session.NewCacheStore(cache.NewMemory[session.Session]())
//
//	s := session.New(user.ID, "google.com", identity.ExpiresAt)
//	s.Email = user.Email
//	_ = store.Set(ctx, s)
//
//	current, err := store.Current(ctx)
//	if errors.Is(err, session.ErrNotFound) {
//		// signed out
//	}
package session
