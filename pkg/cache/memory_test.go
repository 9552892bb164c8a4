package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/cache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42, time.Minute))

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("expired key is not found", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", -1))
		time.Sleep(5 * time.Millisecond)

		val, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "value", val)
	})
}

func TestMemory_Add(t *testing.T) {
	t.Parallel()

	t.Run("second add is rejected", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[bool]()
		defer c.Close()

		ctx := context.Background()
		ok, err := c.Add(ctx, "k", true, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = c.Add(ctx, "k", true, time.Minute)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expired entry can be added again", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[bool](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		ok, err := c.Add(ctx, "k", true, time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)
		time.Sleep(5 * time.Millisecond)

		ok, err = c.Add(ctx, "k", true, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("only one concurrent add wins", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[bool]()
		defer c.Close()

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := c.Add(context.Background(), "k", true, time.Minute)
				if err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), wins.Load())
	})
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "key", "value", 0))
	require.NoError(t, c.Delete(ctx, "key"))
	require.NoError(t, c.Delete(ctx, "missing"))

	_, err := c.Get(ctx, "key")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	ctx := context.Background()
	require.ErrorIs(t, c.Set(ctx, "k", "v", 0), cache.ErrClosed)
	_, err := c.Add(ctx, "k", "v", 0)
	require.ErrorIs(t, err, cache.ErrClosed)
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrClosed)
}
