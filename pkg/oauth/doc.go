// Package oauth builds authorization request descriptors for the social
// sign-in providers and turns their redirects back into provider tokens.
//
// Three providers are supported: Google (OIDC id_token), Facebook (OAuth
// access_token) and Apple (identity token, web flow). Each constructor
// returns an immutable *Request built on golang.org/x/oauth2 that the
// platform's browser or sheet can execute.
//
// # Usage
//
//	app := oauth.AppConfig{Scheme: "tryjesus", RedirectPath: "oauthredirect"}
//
//	req, err := oauth.NewGoogleRequest(oauth.GoogleConfig{
//		ClientID: os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
//	}, app)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state, _ := oauth.NewState()
//	nonce, _ := oauth.NewState()
//	u := req.AuthURL(state, nonce)
//
//	// ... the platform opens u and redirects to tryjesus://oauthredirect#id_token=...
//
//	res, err := oauth.ParseRedirect(callbackURL)
//	if err != nil {
//		// malformed redirect
//	}
//	token, err := req.Token(res, state)
//	if errors.Is(err, oauth.ErrCancelled) {
//		// user dismissed the prompt
//	}
//
// # Redirects
//
// ParseRedirect and RedirectFromValues classify a redirect as success,
// cancel or error. "access_denied", Apple's "user_cancelled_authorize" and
// Facebook's error_reason=user_denied are treated as cancellation.
//
// # Error Handling
//
//   - ErrMissingClientID: constructor called without client or app ID
//   - ErrUnknownProvider: ParseProviderID got an unsupported name
//   - ErrInvalidRedirect: redirect URL could not be parsed
//   - ErrCancelled: the user dismissed the prompt
//   - ErrProviderError: the provider redirected with an error
//   - ErrStateMismatch: the redirect did not echo the issued state
//   - ErrMissingToken: the redirect carried no token
package oauth
