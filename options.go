package authbridge

import (
	"log/slog"

	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithApp sets the app scheme and redirect path.
// Defaults to scheme "tryjesus" and path "oauthredirect".
func WithApp(cfg oauth.AppConfig) Option {
	return func(b *Bridge) {
		b.app = cfg
	}
}

// WithGoogle enables Google sign-in.
func WithGoogle(cfg oauth.GoogleConfig) Option {
	return func(b *Bridge) {
		b.google = &cfg
	}
}

// WithFacebook enables Facebook sign-in.
func WithFacebook(cfg oauth.FacebookConfig) Option {
	return func(b *Bridge) {
		b.facebook = &cfg
	}
}

// WithApple sets the scopes requested from native Sign in with Apple.
func WithApple(cfg oauth.AppleConfig) Option {
	return func(b *Bridge) {
		b.apple = cfg
	}
}

// WithPlatform enables native Sign in with Apple.
func WithPlatform(p Platform) Option {
	return func(b *Bridge) {
		b.platform = p
	}
}

// WithBackend builds the credential exchanger over backend. The Bridge's
// platform, session store, logger and recorder are passed along; extra
// options are applied after them.
func WithBackend(backend credential.Backend, opts ...credential.Option) Option {
	return func(b *Bridge) {
		b.backend = backend
		b.exchangerOpts = opts
	}
}

// WithExchanger uses a prebuilt exchanger. It takes precedence over WithBackend.
func WithExchanger(e *credential.Exchanger) Option {
	return func(b *Bridge) {
		b.exchanger = e
	}
}

// WithSessionStore sets where authenticated sessions are kept.
func WithSessionStore(s session.Store) Option {
	return func(b *Bridge) {
		b.sessions = s
	}
}

// WithNonceBuilder replaces the Apple nonce builder.
func WithNonceBuilder(nb *nonce.Builder) Option {
	return func(b *Bridge) {
		if nb != nil {
			b.nonces = nb
		}
	}
}

// WithStateGenerator replaces the generator for OAuth state values.
func WithStateGenerator(fn func() (string, error)) Option {
	return func(b *Bridge) {
		if fn != nil {
			b.newState = fn
		}
	}
}

// WithRecorder sets the metrics recorder for attempts. If it also
// implements credential.Recorder, exchanges are recorded too.
func WithRecorder(r AttemptRecorder) Option {
	return func(b *Bridge) {
		b.recorder = r
	}
}

// WithLogger sets the logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger.OrNope(l)
	}
}
