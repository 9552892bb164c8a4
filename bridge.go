package authbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

// Bridge runs sign-in attempts. Its configuration is fixed at New; attempts
// share nothing but the session store.
type Bridge struct {
	app      oauth.AppConfig
	google   *oauth.GoogleConfig
	facebook *oauth.FacebookConfig
	apple    oauth.AppleConfig

	platform      Platform
	backend       credential.Backend
	exchangerOpts []credential.Option
	exchanger     *credential.Exchanger
	sessions      session.Store
	nonces        *nonce.Builder
	newState      func() (string, error)
	recorder      AttemptRecorder
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a Bridge. A credential exchanger is required, either
// prebuilt (WithExchanger) or built from a backend (WithBackend).
func New(opts ...Option) (*Bridge, error) {
	b := &Bridge{
		app:      oauth.AppConfig{Scheme: "tryjesus", RedirectPath: "oauthredirect"},
		nonces:   nonce.NewBuilder(),
		newState: oauth.NewState,
		logger:   logger.NewNope(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.exchanger == nil {
		if b.backend == nil {
			return nil, ErrNoBackend
		}
		eopts := []credential.Option{credential.WithLogger(b.logger)}
		if b.sessions != nil {
			eopts = append(eopts, credential.WithSessionStore(b.sessions))
		}
		if b.platform != nil {
			eopts = append(eopts, credential.WithPlatform(b.platform))
		}
		if r, ok := b.recorder.(credential.Recorder); ok {
			eopts = append(eopts, credential.WithRecorder(r))
		}
		b.exchanger = credential.NewExchanger(b.backend, append(eopts, b.exchangerOpts...)...)
	}

	return b, nil
}

// SignInWithGoogle runs a Google attempt through p.
func (b *Bridge) SignInWithGoogle(ctx context.Context, p Prompter) (credential.Result, *Attempt) {
	return b.signInWeb(ctx, oauth.Google, p)
}

// SignInWithFacebook runs a Facebook attempt through p.
func (b *Bridge) SignInWithFacebook(ctx context.Context, p Prompter) (credential.Result, *Attempt) {
	return b.signInWeb(ctx, oauth.Facebook, p)
}

// SignInWithApple runs a native Apple attempt. Without a platform, or when
// the platform reports Apple unavailable, the attempt fails with
// KindUnavailable before any prompt is shown.
func (b *Bridge) SignInWithApple(ctx context.Context) (credential.Result, *Attempt) {
	a := newAttempt(oauth.Apple, b.now)
	ctx = logger.WithAttempt(ctx, a.ID, a.Provider.String())

	if b.platform == nil || !b.platform.AppleSignInAvailable(ctx) {
		return b.fail(ctx, a, errors.Join(credential.ErrUnavailable, ErrAppleNotSupported))
	}

	pair, err := b.nonces.Build()
	if err != nil {
		return b.fail(ctx, a, err)
	}
	if res, done := b.advance(ctx, a, StateRequestBuilt); done {
		return res, a
	}

	scopes := b.apple.Scopes
	if len(scopes) == 0 {
		scopes = oauth.AppleDefaultScopes()
	}

	if res, done := b.advance(ctx, a, StateAwaitingRedirect); done {
		return res, a
	}
	b.logger.InfoContext(ctx, "presenting apple sign-in")
	resp, err := b.platform.PresentAppleSignIn(ctx, scopes, pair.Hashed)
	if err != nil {
		return b.fail(ctx, a, promptError(err))
	}

	switch resp.Type {
	case oauth.RedirectSuccess:
	case oauth.RedirectCancel:
		return b.fail(ctx, a, oauth.ErrCancelled)
	default:
		return b.fail(ctx, a, fmt.Errorf("%w: %s", ErrAppleProviderError, resp.Error))
	}
	if resp.IdentityToken == "" {
		return b.fail(ctx, a, errors.Join(oauth.ErrMissingToken, ErrAppleMissingToken))
	}

	if res, done := b.advance(ctx, a, StateTokenReceived); done {
		return res, a
	}

	cred := credential.Apple(resp.IdentityToken, pair.Raw)
	// Apple only sends the name on the first authorization.
	if resp.User != nil {
		cred.DisplayName = resp.User.FullName()
	}
	return b.exchange(ctx, a, cred)
}

func (b *Bridge) signInWeb(ctx context.Context, provider oauth.ProviderID, p Prompter) (credential.Result, *Attempt) {
	a := newAttempt(provider, b.now)
	ctx = logger.WithAttempt(ctx, a.ID, a.Provider.String())

	if p == nil {
		return b.fail(ctx, a, ErrNoPrompter)
	}

	req, err := b.request(provider, p)
	if err != nil {
		return b.fail(ctx, a, err)
	}

	state, err := b.newState()
	if err != nil {
		return b.fail(ctx, a, err)
	}

	// Google requires a nonce with response_type=id_token. Facebook ignores it.
	var nonceValue string
	if provider == oauth.Google {
		pair, err := b.nonces.Build()
		if err != nil {
			return b.fail(ctx, a, err)
		}
		nonceValue = pair.Raw
	}

	if res, done := b.advance(ctx, a, StateRequestBuilt); done {
		return res, a
	}
	if res, done := b.advance(ctx, a, StateAwaitingRedirect); done {
		return res, a
	}

	b.logger.InfoContext(ctx, "awaiting authorization redirect", slog.String("redirect_uri", req.RedirectURI()))
	redirect, err := p.Prompt(ctx, req, state, nonceValue)
	if err != nil {
		return b.fail(ctx, a, promptError(err))
	}

	tok, err := req.Token(redirect, state)
	if err != nil {
		return b.fail(ctx, a, err)
	}
	if res, done := b.advance(ctx, a, StateTokenReceived); done {
		return res, a
	}

	cred, err := credential.FromToken(tok, "")
	if err != nil {
		return b.fail(ctx, a, err)
	}
	return b.exchange(ctx, a, cred)
}

// promptError treats a deadline that expires while the user is still looking
// at the prompt as a dismissal. No network call has been made yet.
func promptError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, oauth.ErrCancelled) {
		return errors.Join(oauth.ErrCancelled, err)
	}
	return err
}

func (b *Bridge) request(provider oauth.ProviderID, p Prompter) (*oauth.Request, error) {
	var opts []oauth.Option
	if rp, ok := p.(RedirectProvider); ok {
		opts = append(opts, oauth.WithRedirectURI(rp.RedirectURI()))
	}

	var (
		req *oauth.Request
		err error
	)
	switch provider {
	case oauth.Google:
		if b.google == nil {
			return nil, errors.Join(credential.ErrUnavailable, fmt.Errorf("%w: google", ErrProviderDisabled))
		}
		req, err = oauth.NewGoogleRequest(*b.google, b.app, opts...)
	case oauth.Facebook:
		if b.facebook == nil {
			return nil, errors.Join(credential.ErrUnavailable, fmt.Errorf("%w: facebook", ErrProviderDisabled))
		}
		req, err = oauth.NewFacebookRequest(*b.facebook, b.app, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", oauth.ErrUnknownProvider, provider)
	}
	if err != nil {
		return nil, errors.Join(credential.ErrUnavailable, err)
	}
	return req, nil
}

func (b *Bridge) exchange(ctx context.Context, a *Attempt, cred credential.Credential) (credential.Result, *Attempt) {
	if res, done := b.advance(ctx, a, StateExchanging); done {
		return res, a
	}

	res := b.exchanger.Exchange(ctx, cred)
	if !res.Success {
		return b.finish(ctx, a, res)
	}
	if err := a.Advance(StateAuthenticated); err != nil {
		return b.finish(ctx, a, credential.Failed(err))
	}
	return b.finish(ctx, a, res)
}

// advance moves a forward. On an illegal move the attempt is failed and
// done is true.
func (b *Bridge) advance(ctx context.Context, a *Attempt, next State) (credential.Result, bool) {
	if err := a.Advance(next); err != nil {
		res, _ := b.fail(ctx, a, err)
		return res, true
	}
	return credential.Result{}, false
}

func (b *Bridge) fail(ctx context.Context, a *Attempt, err error) (credential.Result, *Attempt) {
	return b.finish(ctx, a, credential.Failed(err))
}

// finish makes the attempt terminal and reports it.
func (b *Bridge) finish(ctx context.Context, a *Attempt, res credential.Result) (credential.Result, *Attempt) {
	if !res.Success && !a.State.Terminal() {
		// Any non-terminal state may fail.
		_ = a.Fail(res.ErrorKind)
	}
	if !res.Success && a.ErrorKind == credential.KindNone {
		a.ErrorKind = res.ErrorKind
	}

	outcome := "success"
	if !res.Success {
		outcome = res.ErrorKind.String()
	}
	if b.recorder != nil {
		b.recorder.AttemptFinished(a.Provider.String(), outcome)
	}

	attrs := []any{slog.String("outcome", outcome), slog.Int("steps", len(a.History))}
	switch {
	case res.Success:
		b.logger.InfoContext(ctx, "sign-in attempt authenticated", attrs...)
	case res.Cancelled():
		b.logger.InfoContext(ctx, "sign-in attempt cancelled", attrs...)
	default:
		b.logger.WarnContext(ctx, "sign-in attempt failed", append(attrs, slog.Any("error", res.Err))...)
	}
	return res, a
}

// SignOut clears the current session.
func (b *Bridge) SignOut(ctx context.Context) error {
	if b.sessions == nil {
		return ErrNoSessionStore
	}
	if err := b.sessions.Clear(ctx); err != nil {
		return err
	}
	b.logger.InfoContext(ctx, "signed out")
	return nil
}

// CurrentUser returns the user of the current session.
// Returns session.ErrNotFound when nobody is signed in.
func (b *Bridge) CurrentUser(ctx context.Context) (*credential.User, error) {
	if b.sessions == nil {
		return nil, ErrNoSessionStore
	}
	s, err := b.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &credential.User{ID: s.UserID, Email: s.Email, DisplayName: s.DisplayName}, nil
}
