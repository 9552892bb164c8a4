package credential

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

// AvailabilityChecker reports whether native Sign in with Apple exists on
// this platform.
type AvailabilityChecker interface {
	AppleSignInAvailable(ctx context.Context) bool
}

// Recorder observes finished exchanges. pkg/metrics implements it.
type Recorder interface {
	ObserveExchange(provider, outcome string, d time.Duration)
}

// Option configures an Exchanger.
type Option func(*Exchanger)

// WithSessionStore records the session on every successful exchange.
func WithSessionStore(s session.Store) Option {
	return func(e *Exchanger) {
		e.sessions = s
	}
}

// WithPlatform sets the Apple availability check. Without it Apple is
// assumed available.
func WithPlatform(p AvailabilityChecker) Option {
	return func(e *Exchanger) {
		e.platform = p
	}
}

// WithNonceTracker rejects Apple raw nonces that were already exchanged.
func WithNonceTracker(t *nonce.Tracker) Option {
	return func(e *Exchanger) {
		e.nonces = t
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exchanger) {
		e.logger = logger.OrNope(l)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Exchanger) {
		e.recorder = r
	}
}

// WithClock overrides time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(e *Exchanger) {
		if now != nil {
			e.now = now
		}
	}
}
