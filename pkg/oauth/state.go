package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// NewState returns a random value suitable for the state or OIDC nonce
// parameter of an authorization request.
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrRandom, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
