package credential

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// Credential is the provider-agnostic token bundle presented to the
// identity backend. Provider is the tag; the populated fields depend on it:
// Google sets IDToken, Facebook sets AccessToken, Apple sets IDToken and RawNonce.
type Credential struct {
	Provider    oauth.ProviderID
	IDToken     string
	AccessToken string
	RawNonce    string

	// DisplayName is the name reported by the platform prompt. It is used
	// when the backend returns none and is never sent to the backend.
	DisplayName string
}

// Google wraps a Google OIDC id token.
func Google(idToken string) Credential {
	return Credential{Provider: oauth.Google, IDToken: idToken}
}

// Facebook wraps a Facebook access token.
func Facebook(accessToken string) Credential {
	return Credential{Provider: oauth.Facebook, AccessToken: accessToken}
}

// Apple wraps an Apple identity token and the raw nonce whose digest was
// sent in the authorization request.
func Apple(identityToken, rawNonce string) Credential {
	return Credential{Provider: oauth.Apple, IDToken: identityToken, RawNonce: rawNonce}
}

// FromToken builds the credential matching a redirect token. rawNonce is
// only used for Apple.
func FromToken(tok oauth.Token, rawNonce string) (Credential, error) {
	switch tok.Provider {
	case oauth.Google:
		return Google(tok.Value), nil
	case oauth.Facebook:
		return Facebook(tok.Value), nil
	case oauth.Apple:
		return Apple(tok.Value, rawNonce), nil
	}
	return Credential{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, tok.Provider)
}

// Token returns the provider token carried by the credential.
func (c Credential) Token() string {
	if c.Provider == oauth.Facebook {
		return c.AccessToken
	}
	return c.IDToken
}

// Validate checks the fields required by the provider tag.
func (c Credential) Validate() error {
	if !c.Provider.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.Provider)
	}
	if strings.TrimSpace(c.Token()) == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidToken, c.Provider.TokenKind())
	}
	if c.Provider == oauth.Apple && c.RawNonce == "" {
		return fmt.Errorf("%w: raw nonce is required for apple", ErrNonceMismatch)
	}
	return nil
}
