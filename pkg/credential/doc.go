// Package credential turns provider tokens into an authenticated session.
//
// A Credential is a tagged variant over the provider: Google carries an
// OIDC id token, Facebook an OAuth access token, Apple an identity token
// plus the raw nonce. The Exchanger dispatches on the tag, runs cheap local
// checks (token shape and expiry, Apple nonce claim, nonce replay), then
// calls the identity Backend. On success the session store is updated.
//
// # Usage
//
//	ex := credential.NewExchanger(backend,
//		credential.WithSessionStore(store),
//		credential.WithPlatform(platform),
//		credential.WithNonceTracker(nonce.NewTracker(cache.NewMemory[bool](), 0)),
//	)
//
//	res := ex.ExchangeApple(ctx, identityToken, pair.Raw)
//	if !res.Success {
//		switch res.ErrorKind {
//		case credential.KindUserCancelled:
//			// nothing to show
//		case credential.KindNonceMismatch:
//			// start over with a fresh nonce
//		}
//	}
//
// # Errors
//
// Exchange never returns an error value. Failures come back as a Result
// whose ErrorKind is derived by Classify from the sentinel errors of this
// package and of pkg/oauth and pkg/nonce. There are no retries: a retry is
// a new attempt started by the user.
package credential
