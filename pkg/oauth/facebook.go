package oauth

import (
	facebookOAuth "golang.org/x/oauth2/facebook"
)

// FacebookDefaultScopes returns the scopes requested when none are configured.
func FacebookDefaultScopes() []string {
	return []string{"public_profile", "email"}
}

// NewFacebookRequest creates the Facebook Login request.
// Facebook answers with an OAuth access_token in the redirect fragment.
func NewFacebookRequest(cfg FacebookConfig, app AppConfig, opts ...Option) (*Request, error) {
	return newRequest(requestSpec{
		provider:      Facebook,
		clientID:      cfg.AppID,
		scopes:        cfg.Scopes,
		defaultScopes: FacebookDefaultScopes(),
		endpoint:      facebookOAuth.Endpoint,
		responseType:  "token",
		tokenParam:    "access_token",
	}, app, opts...)
}
