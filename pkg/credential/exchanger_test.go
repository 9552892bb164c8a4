package credential_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/cache"
	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

// fakeBackend accepts tokens listed in valid and returns an identity
// whose email is read from the token.
type fakeBackend struct {
	valid map[string]bool
	err   error
	mu    sync.Mutex
	calls []credential.Credential
}

func (b *fakeBackend) SignInWithCredential(_ context.Context, c credential.Credential) (*credential.Identity, error) {
	b.mu.Lock()
	b.calls = append(b.calls, c)
	b.mu.Unlock()

	if b.err != nil {
		return nil, b.err
	}
	if !b.valid[c.Token()] {
		return nil, fmt.Errorf("%w: INVALID_IDP_RESPONSE", credential.ErrInvalidToken)
	}

	email := "fb-user@example.com"
	if c.Provider != oauth.Facebook {
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(c.IDToken, claims); err == nil {
			email, _ = claims["email"].(string)
		}
	}
	return &credential.Identity{
		UserID:      "uid-" + c.Provider.String(),
		Email:       email,
		DisplayName: "Test User",
		IDToken:     "backend-id-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type platform bool

func (p platform) AppleSignInAvailable(context.Context) bool { return bool(p) }

type recorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recorder) ObserveExchange(provider, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, provider+":"+outcome)
}

// unreachableStore fails every write the way go-redis does when the server
// is down.
type unreachableStore struct {
	cache.Cache[bool]
}

func (unreachableStore) Add(context.Context, string, bool, time.Duration) (bool, error) {
	return false, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func newSessionStore(t *testing.T) *session.CacheStore {
	t.Helper()
	c := cache.NewMemory[session.Session]()
	t.Cleanup(func() { _ = c.Close() })
	return session.NewCacheStore(c)
}

func TestExchangeGoogle(t *testing.T) {
	t.Parallel()

	t.Run("valid id token establishes session", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{"email": "jane@example.com", "exp": time.Now().Add(time.Hour).Unix()})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}
		store := newSessionStore(t)
		rec := &recorder{}
		ex := credential.NewExchanger(backend, credential.WithSessionStore(store), credential.WithRecorder(rec))

		res := ex.ExchangeGoogle(context.Background(), tok)
		require.True(t, res.Success)
		require.Equal(t, credential.KindNone, res.ErrorKind)
		require.Equal(t, "jane@example.com", res.User.Email)

		s, err := store.Current(context.Background())
		require.NoError(t, err)
		require.Equal(t, "uid-google", s.UserID)
		require.Equal(t, "google.com", s.Provider)
		require.Equal(t, []string{"google:success"}, rec.outcomes)
	})

	t.Run("backend rejection is invalid token", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{"email": "jane@example.com"})
		backend := &fakeBackend{}
		store := newSessionStore(t)
		ex := credential.NewExchanger(backend, credential.WithSessionStore(store))

		res := ex.ExchangeGoogle(context.Background(), tok)
		require.False(t, res.Success)
		require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
		require.Nil(t, res.User)
		require.Equal(t, 1, backend.callCount())

		_, err := store.Current(context.Background())
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("malformed token never reaches backend", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		res := credential.NewExchanger(backend).ExchangeGoogle(context.Background(), "not-a-jwt")
		require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
		require.Zero(t, backend.callCount())
	})

	t.Run("expired token never reaches backend", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}
		res := credential.NewExchanger(backend).ExchangeGoogle(context.Background(), tok)
		require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
		require.Zero(t, backend.callCount())
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		res := credential.NewExchanger(&fakeBackend{}).ExchangeGoogle(context.Background(), " ")
		require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
	})

	t.Run("transport failure is network error", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{})
		backend := &fakeBackend{err: errors.Join(credential.ErrNetwork, errors.New("connection reset"))}
		res := credential.NewExchanger(backend).ExchangeGoogle(context.Background(), tok)
		require.Equal(t, credential.KindNetworkError, res.ErrorKind)
	})
}

func TestExchangeFacebook(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{valid: map[string]bool{"EAAB-opaque": true}}
	ex := credential.NewExchanger(backend)

	res := ex.ExchangeFacebook(context.Background(), "EAAB-opaque")
	require.True(t, res.Success)
	require.Equal(t, "uid-facebook", res.User.ID)
	require.Equal(t, "EAAB-opaque", backend.calls[0].AccessToken)
	require.Empty(t, backend.calls[0].IDToken)

	res = ex.ExchangeFacebook(context.Background(), "EAAB-revoked")
	require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
}

func TestExchangeApple(t *testing.T) {
	t.Parallel()

	builder := nonce.NewBuilder()

	t.Run("unavailable platform fails before anything else", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		ex := credential.NewExchanger(backend, credential.WithPlatform(platform(false)))

		res := ex.ExchangeApple(context.Background(), "", "")
		require.Equal(t, credential.KindUnavailable, res.ErrorKind)
		require.Zero(t, backend.callCount())
	})

	t.Run("matching nonce signs in", func(t *testing.T) {
		t.Parallel()

		pair, err := builder.Build()
		require.NoError(t, err)
		tok := signToken(t, jwt.MapClaims{"email": "apple@example.com", "nonce": pair.Hashed})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}
		ex := credential.NewExchanger(backend, credential.WithPlatform(platform(true)))

		res := ex.ExchangeApple(context.Background(), tok, pair.Raw)
		require.True(t, res.Success)
		require.Equal(t, "apple@example.com", res.User.Email)
		require.Equal(t, pair.Raw, backend.calls[0].RawNonce)
	})

	t.Run("nonce claim mismatch", func(t *testing.T) {
		t.Parallel()

		pair, err := builder.Build()
		require.NoError(t, err)
		other, err := builder.Build()
		require.NoError(t, err)
		tok := signToken(t, jwt.MapClaims{"nonce": other.Hashed})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}

		res := credential.NewExchanger(backend).ExchangeApple(context.Background(), tok, pair.Raw)
		require.Equal(t, credential.KindNonceMismatch, res.ErrorKind)
		require.Zero(t, backend.callCount())
	})

	t.Run("missing raw nonce", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{})
		res := credential.NewExchanger(&fakeBackend{}).ExchangeApple(context.Background(), tok, "")
		require.Equal(t, credential.KindNonceMismatch, res.ErrorKind)
	})

	t.Run("reused nonce is rejected", func(t *testing.T) {
		t.Parallel()

		pair, err := builder.Build()
		require.NoError(t, err)
		tok := signToken(t, jwt.MapClaims{"nonce": pair.Hashed})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}
		seen := cache.NewMemory[bool]()
		defer seen.Close()
		ex := credential.NewExchanger(backend, credential.WithNonceTracker(nonce.NewTracker(seen, 0)))

		require.True(t, ex.ExchangeApple(context.Background(), tok, pair.Raw).Success)

		res := ex.ExchangeApple(context.Background(), tok, pair.Raw)
		require.Equal(t, credential.KindNonceMismatch, res.ErrorKind)
		require.ErrorIs(t, res.Err, nonce.ErrReused)
		require.Equal(t, 1, backend.callCount())
	})

	t.Run("nonce store outage is a network error", func(t *testing.T) {
		t.Parallel()

		pair, err := builder.Build()
		require.NoError(t, err)
		tok := signToken(t, jwt.MapClaims{"nonce": pair.Hashed})
		backend := &fakeBackend{valid: map[string]bool{tok: true}}
		ex := credential.NewExchanger(backend, credential.WithNonceTracker(nonce.NewTracker(unreachableStore{}, 0)))

		res := ex.ExchangeApple(context.Background(), tok, pair.Raw)
		require.Equal(t, credential.KindNetworkError, res.ErrorKind)
		require.NotErrorIs(t, res.Err, credential.ErrNonceMismatch)
		require.Zero(t, backend.callCount())
	})

	t.Run("closed nonce store is not a mismatch", func(t *testing.T) {
		t.Parallel()

		pair, err := builder.Build()
		require.NoError(t, err)
		tok := signToken(t, jwt.MapClaims{"nonce": pair.Hashed})
		seen := cache.NewMemory[bool]()
		require.NoError(t, seen.Close())
		ex := credential.NewExchanger(&fakeBackend{valid: map[string]bool{tok: true}},
			credential.WithNonceTracker(nonce.NewTracker(seen, 0)))

		res := ex.ExchangeApple(context.Background(), tok, pair.Raw)
		require.Equal(t, credential.KindUnknown, res.ErrorKind)
		require.ErrorIs(t, res.Err, cache.ErrClosed)
	})

	t.Run("backend nonce rejection", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{})
		backend := &fakeBackend{err: fmt.Errorf("%w: MISSING_OR_INVALID_NONCE", credential.ErrNonceMismatch)}
		res := credential.NewExchanger(backend).ExchangeApple(context.Background(), tok, "raw")
		require.Equal(t, credential.KindNonceMismatch, res.ErrorKind)
	})
}

func TestExchange_Dispatch(t *testing.T) {
	t.Parallel()

	res := credential.NewExchanger(&fakeBackend{}).Exchange(context.Background(), credential.Credential{Provider: "github", IDToken: "x"})
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, credential.ErrUnsupportedProvider)
	require.Equal(t, credential.KindUnknown, res.ErrorKind)
}

func TestExchange_BackendReturnsNoUser(t *testing.T) {
	t.Parallel()

	backend := credential.BackendFunc(func(context.Context, credential.Credential) (*credential.Identity, error) {
		return &credential.Identity{}, nil
	})
	res := credential.NewExchanger(backend).ExchangeFacebook(context.Background(), "tok")
	require.Equal(t, credential.KindInvalidToken, res.ErrorKind)
}

func TestExchange_SessionStoreFailure(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[session.Session]()
	require.NoError(t, c.Close())

	backend := &fakeBackend{valid: map[string]bool{"tok": true}}
	ex := credential.NewExchanger(backend, credential.WithSessionStore(session.NewCacheStore(c)))

	res := ex.ExchangeFacebook(context.Background(), "tok")
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, credential.ErrSessionStore)
}

func TestExchange_ConcurrentProvidersAreIndependent(t *testing.T) {
	t.Parallel()

	gTok := signToken(t, jwt.MapClaims{"email": "g@example.com"})
	backend := &fakeBackend{valid: map[string]bool{gTok: true, "fb": true}}
	ex := credential.NewExchanger(backend)

	var wg sync.WaitGroup
	results := make([]credential.Result, 2)
	wg.Add(2)
	go func() { defer wg.Done(); results[0] = ex.ExchangeGoogle(context.Background(), gTok) }()
	go func() { defer wg.Done(); results[1] = ex.ExchangeFacebook(context.Background(), "fb") }()
	wg.Wait()

	require.True(t, results[0].Success)
	require.True(t, results[1].Success)
	require.Equal(t, 2, backend.callCount())
}

func TestExchange_DisplayNameFallback(t *testing.T) {
	t.Parallel()

	backend := credential.BackendFunc(func(context.Context, credential.Credential) (*credential.Identity, error) {
		return &credential.Identity{UserID: "uid-1", Email: "ada@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
	})
	store := newSessionStore(t)
	ex := credential.NewExchanger(backend, credential.WithSessionStore(store))

	c := credential.Facebook("tok")
	c.DisplayName = "Ada Lovelace"
	res := ex.Exchange(context.Background(), c)
	require.True(t, res.Success, "%v", res.Err)
	require.Equal(t, "Ada Lovelace", res.User.DisplayName)

	s, err := store.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", s.DisplayName)
}

func TestExchange_NilLogger(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{valid: map[string]bool{"tok": true}}
	ex := credential.NewExchanger(backend, credential.WithLogger(nil))
	require.True(t, ex.ExchangeFacebook(context.Background(), "tok").Success)
}
