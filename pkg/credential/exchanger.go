package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

// Exchanger converts provider tokens into backend sessions.
//
// Each call is a single in-flight request with no retries. Concurrent calls
// are independent; the exchanger imposes no exclusion between them.
type Exchanger struct {
	backend  Backend
	sessions session.Store
	platform AvailabilityChecker
	nonces   *nonce.Tracker
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewExchanger creates an Exchanger over the identity backend.
func NewExchanger(backend Backend, opts ...Option) *Exchanger {
	e := &Exchanger{
		backend: backend,
		logger:  logger.NewNope(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExchangeGoogle signs in with a Google OIDC id token.
func (e *Exchanger) ExchangeGoogle(ctx context.Context, idToken string) Result {
	return e.Exchange(ctx, Google(idToken))
}

// ExchangeFacebook signs in with a Facebook access token.
func (e *Exchanger) ExchangeFacebook(ctx context.Context, accessToken string) Result {
	return e.Exchange(ctx, Facebook(accessToken))
}

// ExchangeApple signs in with an Apple identity token and the raw nonce
// whose digest was sent to Apple.
func (e *Exchanger) ExchangeApple(ctx context.Context, identityToken, rawNonce string) Result {
	return e.Exchange(ctx, Apple(identityToken, rawNonce))
}

// Exchange dispatches on the credential's provider tag. Every failure is
// returned as a Result; Exchange never panics on bad input.
func (e *Exchanger) Exchange(ctx context.Context, c Credential) Result {
	start := time.Now()
	res := e.exchange(ctx, c)
	elapsed := time.Since(start)

	if e.recorder != nil {
		e.recorder.ObserveExchange(c.Provider.String(), outcome(res), elapsed)
	}

	attrs := []any{
		slog.String("provider", c.Provider.String()),
		slog.String("outcome", outcome(res)),
		slog.Duration("duration", elapsed),
	}
	switch {
	case res.Success:
		e.logger.InfoContext(ctx, "credential exchange succeeded", append(attrs, slog.String("user_id", res.User.ID))...)
	case res.Cancelled():
		e.logger.InfoContext(ctx, "credential exchange cancelled", attrs...)
	default:
		e.logger.WarnContext(ctx, "credential exchange failed", append(attrs, slog.Any("error", res.Err))...)
	}

	return res
}

func (e *Exchanger) exchange(ctx context.Context, c Credential) Result {
	if c.Provider == oauth.Apple && e.platform != nil && !e.platform.AppleSignInAvailable(ctx) {
		return Failed(fmt.Errorf("%w: native apple sign-in not supported on this platform", ErrUnavailable))
	}

	if err := c.Validate(); err != nil {
		return Failed(err)
	}

	if err := e.precheck(ctx, c); err != nil {
		return Failed(err)
	}

	id, err := e.backend.SignInWithCredential(ctx, c)
	if err != nil {
		return Failed(err)
	}
	if id == nil || id.UserID == "" {
		return Failed(fmt.Errorf("%w: backend returned no user", ErrInvalidToken))
	}

	name := id.DisplayName
	if name == "" {
		name = c.DisplayName
	}

	if e.sessions != nil {
		s := session.New(id.UserID, c.Provider.BackendID(), id.ExpiresAt)
		s.Email = id.Email
		s.DisplayName = name
		s.IDToken = id.IDToken
		s.RefreshToken = id.RefreshToken
		if err := e.sessions.Set(ctx, s); err != nil {
			return Failed(errors.Join(ErrSessionStore, err))
		}
	}

	return Succeeded(&User{
		ID:          id.UserID,
		Email:       id.Email,
		DisplayName: name,
	})
}

// precheck runs the local token checks that do not need the backend.
func (e *Exchanger) precheck(ctx context.Context, c Credential) error {
	switch c.Provider {
	case oauth.Google:
		_, err := checkIDToken(c.IDToken, e.now())
		return err
	case oauth.Apple:
		claims, err := checkIDToken(c.IDToken, e.now())
		if err != nil {
			return err
		}
		if err := checkAppleNonce(claims, c.RawNonce); err != nil {
			return err
		}
		if e.nonces != nil {
			err := e.nonces.Consume(ctx, c.RawNonce)
			switch {
			case err == nil:
			case errors.Is(err, nonce.ErrReused), errors.Is(err, nonce.ErrEmpty):
				return errors.Join(ErrNonceMismatch, err)
			default:
				// Store outages classify on their own cause.
				return err
			}
		}
	}
	return nil
}

func outcome(r Result) string {
	if r.Success {
		return "success"
	}
	return r.ErrorKind.String()
}
