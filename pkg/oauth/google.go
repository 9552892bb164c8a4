package oauth

import (
	googleOAuth "golang.org/x/oauth2/google"
)

// GoogleDefaultScopes returns the scopes requested when none are configured.
func GoogleDefaultScopes() []string {
	return []string{"profile", "email"}
}

// NewGoogleRequest creates the Google authorization request.
// Google answers with an OIDC id_token in the redirect fragment.
func NewGoogleRequest(cfg GoogleConfig, app AppConfig, opts ...Option) (*Request, error) {
	return newRequest(requestSpec{
		provider:      Google,
		clientID:      cfg.ClientID,
		scopes:        cfg.Scopes,
		defaultScopes: GoogleDefaultScopes(),
		endpoint:      googleOAuth.Endpoint,
		responseType:  "id_token",
		tokenParam:    "id_token",
	}, app, opts...)
}
