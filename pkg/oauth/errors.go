package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the provider client ID (or Facebook app ID) is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrUnknownProvider is returned for a provider identifier outside google, facebook and apple.
	ErrUnknownProvider = errors.New("oauth: unknown provider")

	// ErrInvalidRedirect is returned when a redirect URL cannot be parsed.
	ErrInvalidRedirect = errors.New("oauth: invalid redirect")

	// ErrCancelled is returned when the user dismissed the authorization prompt.
	ErrCancelled = errors.New("oauth: authorization cancelled")

	// ErrProviderError is returned when the provider redirected back with an error.
	ErrProviderError = errors.New("oauth: provider returned an error")

	// ErrStateMismatch is returned when the redirect does not echo the issued state.
	ErrStateMismatch = errors.New("oauth: state mismatch")

	// ErrMissingToken is returned when a successful redirect carries no provider token.
	ErrMissingToken = errors.New("oauth: missing token in redirect")

	// ErrRandom is returned when the system random source fails.
	ErrRandom = errors.New("oauth: failed to read random bytes")
)
