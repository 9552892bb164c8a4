package credential

import "errors"

var (
	// ErrInvalidToken is returned when the identity backend rejects the provider token.
	ErrInvalidToken = errors.New("credential: invalid token")

	// ErrNonceMismatch is returned when the identity token's nonce does not derive from the raw nonce.
	ErrNonceMismatch = errors.New("credential: nonce mismatch")

	// ErrUnavailable is returned when the platform or backend cannot perform this sign-in method.
	ErrUnavailable = errors.New("credential: sign-in method unavailable")

	// ErrNetwork is returned on transport failures talking to the identity backend.
	ErrNetwork = errors.New("credential: network error")

	// ErrCancelled is returned when the user dismissed the sign-in prompt.
	ErrCancelled = errors.New("credential: cancelled by user")

	// ErrUnsupportedProvider is returned for a credential with an unknown provider tag.
	ErrUnsupportedProvider = errors.New("credential: unsupported provider")

	// ErrSessionStore is returned when the session cannot be recorded after a successful exchange.
	ErrSessionStore = errors.New("credential: failed to store session")
)
