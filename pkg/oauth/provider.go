package oauth

import (
	"fmt"
	"strings"
)

// ProviderID identifies an external identity provider.
type ProviderID string

const (
	Google   ProviderID = "google"
	Facebook ProviderID = "facebook"
	Apple    ProviderID = "apple"
)

// ParseProviderID converts user input into a ProviderID.
func ParseProviderID(s string) (ProviderID, error) {
	p := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
	return p, nil
}

// Valid reports whether p is a supported provider.
func (p ProviderID) Valid() bool {
	switch p {
	case Google, Facebook, Apple:
		return true
	}
	return false
}

func (p ProviderID) String() string {
	return string(p)
}

// BackendID returns the provider identifier the identity backend expects.
func (p ProviderID) BackendID() string {
	switch p {
	case Google:
		return "google.com"
	case Facebook:
		return "facebook.com"
	case Apple:
		return "apple.com"
	}
	return ""
}

// TokenKind returns the kind of token the provider hands back on redirect.
func (p ProviderID) TokenKind() TokenKind {
	switch p {
	case Google:
		return KindIDToken
	case Facebook:
		return KindAccessToken
	case Apple:
		return KindIdentityToken
	}
	return ""
}

// TokenKind tags a provider token by its protocol role.
type TokenKind string

const (
	KindIDToken       TokenKind = "id_token"
	KindAccessToken   TokenKind = "access_token"
	KindIdentityToken TokenKind = "identity_token"
)

// Token is an opaque provider token taken from a redirect response.
// It is single use: hand it to the credential exchanger and drop it.
type Token struct {
	Provider ProviderID
	Kind     TokenKind
	Value    string
}
