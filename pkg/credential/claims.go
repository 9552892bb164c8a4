package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/authbridge/pkg/nonce"
)

// Local pre-checks on OIDC tokens. Signatures are not verified here: the
// identity backend owns verification. These checks only catch tokens that
// the backend would certainly reject, without a network round trip.

var unverifiedParser = jwt.NewParser()

func parseUnverified(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.Join(ErrInvalidToken, fmt.Errorf("malformed id token: %w", err))
	}
	return claims, nil
}

// checkIDToken rejects malformed or already expired OIDC tokens.
func checkIDToken(raw string, now time.Time) (jwt.MapClaims, error) {
	claims, err := parseUnverified(raw)
	if err != nil {
		return nil, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, fmt.Errorf("exp claim: %w", err))
	}
	if exp != nil && now.After(exp.Time) {
		return nil, fmt.Errorf("%w: id token expired at %s", ErrInvalidToken, exp.Time.UTC().Format(time.RFC3339))
	}
	return claims, nil
}

// checkAppleNonce verifies that the identity token's nonce claim is the
// digest of rawNonce. Tokens without a nonce claim are left to the backend.
func checkAppleNonce(claims jwt.MapClaims, rawNonce string) error {
	v, ok := claims["nonce"]
	if !ok {
		return nil
	}
	hashed, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: nonce claim is not a string", ErrNonceMismatch)
	}
	if !nonce.Matches(rawNonce, hashed) {
		return ErrNonceMismatch
	}
	return nil
}
