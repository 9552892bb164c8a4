package oauth

import (
	"golang.org/x/oauth2"
)

var appleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://appleid.apple.com/auth/authorize",
	TokenURL: "https://appleid.apple.com/auth/token",
}

// AppleDefaultScopes returns the scopes requested when none are configured.
func AppleDefaultScopes() []string {
	return []string{"name", "email"}
}

// NewAppleRequest creates the Sign in with Apple web request.
// Apple requires form_post when name or email scopes are requested, and
// the nonce passed to AuthURL must be the hashed half of a nonce pair.
func NewAppleRequest(cfg AppleConfig, app AppConfig, opts ...Option) (*Request, error) {
	return newRequest(requestSpec{
		provider:      Apple,
		clientID:      cfg.ServiceID,
		scopes:        cfg.Scopes,
		defaultScopes: AppleDefaultScopes(),
		endpoint:      appleEndpoint,
		responseType:  "code id_token",
		tokenParam:    "id_token",
		extra:         []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("response_mode", "form_post")},
	}, app, opts...)
}
