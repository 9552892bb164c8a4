package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgres://localhost"} {
			client, err := Open(ctx, url)
			require.ErrorIs(t, err, ErrFailedToParseURL, url)
			require.Nil(t, client)
		}
	})

	t.Run("unparsable URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "redis://localhost:6379/notadb")
		require.ErrorIs(t, err, ErrFailedToParseURL)
		require.Nil(t, client)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "redis://127.0.0.1:1/0",
			WithRetry(2, time.Millisecond),
			WithTimeouts(50*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond),
		)
		require.ErrorIs(t, err, ErrConnectionFailed)
		require.Nil(t, client)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		client, err := Open(cctx, "redis://127.0.0.1:1/0", WithRetry(5, time.Hour))
		require.ErrorIs(t, err, ErrConnectionFailed)
		require.Nil(t, client)
	})
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	o := defaultOptions()
	WithPoolSize(9)(o)
	WithRetry(7, 2*time.Second)(o)

	require.Equal(t, 9, o.poolSize)
	require.Equal(t, 7, o.retryAttempts)
	require.Equal(t, 2*time.Second, o.retryInterval)
	require.Equal(t, 5*time.Second, o.dialTimeout)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrPingFailed)
}
