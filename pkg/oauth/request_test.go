package oauth_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

var testApp = oauth.AppConfig{Scheme: "tryjesus", RedirectPath: "oauthredirect"}

func parseAuthURL(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestNewGoogleRequest(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{ClientID: "g-client"}, testApp)
		require.NoError(t, err)
		require.Equal(t, oauth.Google, req.Provider())
		require.Equal(t, "g-client", req.ClientID())
		require.Equal(t, []string{"profile", "email"}, req.Scopes())
		require.Equal(t, "tryjesus://oauthredirect", req.RedirectURI())
		require.Equal(t, "id_token", req.ResponseType())
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{}, testApp)
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, req)
	})

	t.Run("custom scopes are normalized", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{
			ClientID: "g-client",
			Scopes:   []string{" openid ", "email", "", "openid"},
		}, testApp)
		require.NoError(t, err)
		require.Equal(t, []string{"openid", "email"}, req.Scopes())
	})

	t.Run("redirect override", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{ClientID: "g-client"}, testApp,
			oauth.WithRedirectURI("http://127.0.0.1:8085/callback"))
		require.NoError(t, err)
		require.Equal(t, "http://127.0.0.1:8085/callback", req.RedirectURI())
	})
}

func TestRequest_AuthURL(t *testing.T) {
	t.Parallel()

	t.Run("google", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{ClientID: "g-client"}, testApp)
		require.NoError(t, err)

		q := parseAuthURL(t, req.AuthURL("st", "nc"))
		require.Equal(t, "id_token", q.Get("response_type"))
		require.Equal(t, "g-client", q.Get("client_id"))
		require.Equal(t, "profile email", q.Get("scope"))
		require.Equal(t, "tryjesus://oauthredirect", q.Get("redirect_uri"))
		require.Equal(t, "st", q.Get("state"))
		require.Equal(t, "nc", q.Get("nonce"))
	})

	t.Run("facebook", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewFacebookRequest(oauth.FacebookConfig{AppID: "fb-app"}, testApp)
		require.NoError(t, err)

		raw := req.AuthURL("st", "")
		require.Contains(t, raw, "facebook.com")
		q := parseAuthURL(t, raw)
		require.Equal(t, "token", q.Get("response_type"))
		require.Equal(t, "public_profile email", q.Get("scope"))
		require.False(t, q.Has("nonce"))
	})

	t.Run("apple uses form_post", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewAppleRequest(oauth.AppleConfig{ServiceID: "com.example.web"}, testApp)
		require.NoError(t, err)

		raw := req.AuthURL("", "hashed")
		require.Contains(t, raw, "appleid.apple.com")
		q := parseAuthURL(t, raw)
		require.Equal(t, "code id_token", q.Get("response_type"))
		require.Equal(t, "form_post", q.Get("response_mode"))
		require.Equal(t, "hashed", q.Get("nonce"))
		require.False(t, q.Has("state"))
	})

	t.Run("descriptor is reusable", func(t *testing.T) {
		t.Parallel()
		req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{ClientID: "g-client"}, testApp)
		require.NoError(t, err)

		first := parseAuthURL(t, req.AuthURL("one", ""))
		second := parseAuthURL(t, req.AuthURL("two", ""))
		require.Equal(t, "one", first.Get("state"))
		require.Equal(t, "two", second.Get("state"))
		require.Equal(t, first.Get("scope"), second.Get("scope"))
	})
}

func TestRequest_Token(t *testing.T) {
	t.Parallel()

	google, err := oauth.NewGoogleRequest(oauth.GoogleConfig{ClientID: "g-client"}, testApp)
	require.NoError(t, err)
	facebook, err := oauth.NewFacebookRequest(oauth.FacebookConfig{AppID: "fb-app"}, testApp)
	require.NoError(t, err)

	t.Run("google id token", func(t *testing.T) {
		t.Parallel()
		res, err := oauth.ParseRedirect("tryjesus://oauthredirect#id_token=abc&state=st")
		require.NoError(t, err)

		tok, err := google.Token(res, "st")
		require.NoError(t, err)
		require.Equal(t, oauth.Token{Provider: oauth.Google, Kind: oauth.KindIDToken, Value: "abc"}, tok)
	})

	t.Run("facebook access token", func(t *testing.T) {
		t.Parallel()
		res, err := oauth.ParseRedirect("tryjesus://oauthredirect?state=st#access_token=fbtok&expires_in=3600")
		require.NoError(t, err)

		tok, err := facebook.Token(res, "st")
		require.NoError(t, err)
		require.Equal(t, oauth.KindAccessToken, tok.Kind)
		require.Equal(t, "fbtok", tok.Value)
	})

	t.Run("state mismatch", func(t *testing.T) {
		t.Parallel()
		res, err := oauth.ParseRedirect("tryjesus://oauthredirect#id_token=abc&state=other")
		require.NoError(t, err)

		_, err = google.Token(res, "st")
		require.ErrorIs(t, err, oauth.ErrStateMismatch)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		res, err := oauth.ParseRedirect("tryjesus://oauthredirect#state=st")
		require.NoError(t, err)

		_, err = google.Token(res, "st")
		require.ErrorIs(t, err, oauth.ErrMissingToken)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		_, err := facebook.Token(oauth.Cancelled(), "st")
		require.ErrorIs(t, err, oauth.ErrCancelled)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Parallel()
		res, err := oauth.ParseRedirect("tryjesus://oauthredirect?error=server_error&error_description=boom")
		require.NoError(t, err)

		_, err = google.Token(res, "")
		require.ErrorIs(t, err, oauth.ErrProviderError)
		require.Contains(t, err.Error(), "server_error: boom")
	})
}
