// Package nonce builds the nonce pair used by Sign in with Apple.
//
// The raw half stays with the caller and is presented during the credential
// exchange; the hashed half (lowercase hex SHA-256 of raw) goes to Apple in
// the authorization request and comes back as the "nonce" claim of the
// identity token. A pair is single use: build a fresh one per attempt.
//
//	pair, err := nonce.NewBuilder().Build()
//	if err != nil {
//		// ErrCrypto: abort the attempt, never continue without a nonce
//	}
//	resp, err := platform.PresentAppleSignIn(ctx, scopes, pair.Hashed)
//	// exchange resp.IdentityToken together with pair.Raw
//
// Tracker records consumed raw nonces so a pair cannot be exchanged twice.
package nonce
