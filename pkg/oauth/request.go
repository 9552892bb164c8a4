package oauth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/oauth2"
)

// Request is an authorization request descriptor for one provider.
// It is built once per sign-in screen and is safe to reuse across prompt
// attempts: it holds nothing secret beyond the public client ID.
type Request struct {
	config       *oauth2.Config
	provider     ProviderID
	responseType string
	tokenParam   string
	extra        []oauth2.AuthCodeOption
}

type requestSpec struct {
	provider      ProviderID
	clientID      string
	scopes        []string
	defaultScopes []string
	endpoint      oauth2.Endpoint
	responseType  string
	tokenParam    string
	extra         []oauth2.AuthCodeOption
}

func newRequest(spec requestSpec, app AppConfig, opts ...Option) (*Request, error) {
	if strings.TrimSpace(spec.clientID) == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingClientID, spec.provider)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	redirect := o.redirectURI
	if redirect == "" {
		redirect = app.RedirectURI()
	}

	scopes := normalizeScopes(spec.scopes)
	if len(scopes) == 0 {
		scopes = spec.defaultScopes
	}

	return &Request{
		config: &oauth2.Config{
			ClientID:    spec.clientID,
			RedirectURL: redirect,
			Scopes:      scopes,
			Endpoint:    spec.endpoint,
		},
		provider:     spec.provider,
		responseType: spec.responseType,
		tokenParam:   spec.tokenParam,
		extra:        spec.extra,
	}, nil
}

// Provider returns the provider this request targets.
func (r *Request) Provider() ProviderID {
	return r.provider
}

// ClientID returns the public client ID.
func (r *Request) ClientID() string {
	return r.config.ClientID
}

// Scopes returns a copy of the requested scopes in request order.
func (r *Request) Scopes() []string {
	return slices.Clone(r.config.Scopes)
}

// RedirectURI returns the redirect target registered with the provider.
func (r *Request) RedirectURI() string {
	return r.config.RedirectURL
}

// ResponseType returns the OAuth response_type the request asks for.
func (r *Request) ResponseType() string {
	return r.responseType
}

// AuthURL builds the URL the platform browser or sheet opens.
// Empty state or nonce values are omitted from the query.
func (r *Request) AuthURL(state, nonce string) string {
	opts := make([]oauth2.AuthCodeOption, 0, len(r.extra)+2)
	opts = append(opts, oauth2.SetAuthURLParam("response_type", r.responseType))
	if nonce != "" {
		opts = append(opts, oauth2.SetAuthURLParam("nonce", nonce))
	}
	opts = append(opts, r.extra...)
	return r.config.AuthCodeURL(state, opts...)
}

// Token extracts the provider token from a redirect.
// When state is non-empty the redirect must echo it back.
func (r *Request) Token(res Redirect, state string) (Token, error) {
	switch res.Type {
	case RedirectCancel:
		return Token{}, ErrCancelled
	case RedirectError:
		return Token{}, errors.Join(ErrProviderError, fmt.Errorf("%s: %s", r.provider, res.Error))
	case RedirectSuccess:
	default:
		return Token{}, fmt.Errorf("%w: unknown redirect type %q", ErrInvalidRedirect, res.Type)
	}

	if state != "" && subtle.ConstantTimeCompare([]byte(res.Param("state")), []byte(state)) != 1 {
		return Token{}, ErrStateMismatch
	}

	value := res.Param(r.tokenParam)
	if value == "" {
		return Token{}, fmt.Errorf("%w: %s expected %s", ErrMissingToken, r.provider, r.tokenParam)
	}

	return Token{
		Provider: r.provider,
		Kind:     r.provider.TokenKind(),
		Value:    value,
	}, nil
}

// normalizeScopes trims, drops empties and de-duplicates while keeping order.
func normalizeScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
