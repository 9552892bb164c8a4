package nonce

import "errors"

var (
	// ErrCrypto is returned when entropy or digest generation fails.
	ErrCrypto = errors.New("nonce: crypto failure")

	// ErrMismatch is returned when the hashed nonce does not derive from the raw nonce.
	ErrMismatch = errors.New("nonce: hashed value does not match raw value")

	// ErrReused is returned when a raw nonce is presented a second time.
	ErrReused = errors.New("nonce: already used")

	// ErrEmpty is returned when an empty raw nonce is presented.
	ErrEmpty = errors.New("nonce: empty value")
)
