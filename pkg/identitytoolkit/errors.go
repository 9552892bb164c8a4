package identitytoolkit

import "errors"

var (
	// ErrMissingAPIKey is returned when the Firebase web API key is not provided.
	ErrMissingAPIKey = errors.New("identitytoolkit: missing API key")

	// ErrDecodeFailed is returned when the backend response cannot be decoded.
	ErrDecodeFailed = errors.New("identitytoolkit: failed to decode response")

	// ErrRequestFailed is returned for non-OK responses that map to no credential error.
	ErrRequestFailed = errors.New("identitytoolkit: request returned non-OK status")
)
