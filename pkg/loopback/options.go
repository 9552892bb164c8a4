package loopback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// Opener presents the authorization URL to the user, usually by launching
// a browser or printing the link.
type Opener func(ctx context.Context, authURL string) error

// PrintOpener writes the URL to w.
func PrintOpener(w io.Writer) Opener {
	return func(_ context.Context, authURL string) error {
		_, err := fmt.Fprintf(w, "Open this URL in your browser to continue:\n\n  %s\n\n", authURL)
		return err
	}
}

// Option configures a Receiver.
type Option func(*Receiver)

// WithOpener sets how the authorization URL is presented. Default: the URL
// is logged at info level.
func WithOpener(o Opener) Option {
	return func(r *Receiver) {
		r.opener = o
	}
}

// WithTimeout bounds the wait for the redirect. Default: 5 minutes.
func WithTimeout(d time.Duration) Option {
	return func(r *Receiver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 5 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Receiver) {
		if d > 0 {
			r.shutdownTimeout = d
		}
	}
}

// WithCallbackPath changes the callback route. Default: /callback.
func WithCallbackPath(p string) Option {
	return func(r *Receiver) {
		if p != "" && p[0] == '/' {
			r.path = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Receiver) {
		r.logger = logger.OrNope(l)
	}
}
