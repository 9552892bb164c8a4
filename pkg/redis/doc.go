// Package redis opens go-redis clients for the Redis-backed session store
// and nonce tracker.
//
// Open parses a redis:// or rediss:// URL, applies pool and timeout
// settings, and pings with linear backoff before handing the client back:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"),
//		redis.WithPoolSize(5),
//		redis.WithRetry(3, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
