package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// RedirectType discriminates the outcome of an authorization prompt.
type RedirectType string

const (
	RedirectSuccess RedirectType = "success"
	RedirectCancel  RedirectType = "cancel"
	RedirectError   RedirectType = "error"
)

// Redirect is the result of an external authorization prompt.
type Redirect struct {
	Params map[string]string
	Type   RedirectType
	Error  string
}

// Cancelled returns the redirect produced when the user dismisses the prompt.
func Cancelled() Redirect {
	return Redirect{Type: RedirectCancel}
}

// Param returns a redirect parameter or an empty string.
func (r Redirect) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[key]
}

// RedirectURI joins an app URL scheme with a redirect path: "tryjesus" and
// "oauthredirect" give "tryjesus://oauthredirect". An empty scheme yields "".
func RedirectURI(scheme, path string) string {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	scheme = strings.TrimSuffix(scheme, "://")
	scheme = strings.TrimSuffix(scheme, ":")
	if scheme == "" {
		return ""
	}
	return scheme + "://" + strings.TrimLeft(strings.TrimSpace(path), "/")
}

// ParseRedirect parses the URL a provider redirected to.
// Query and fragment parameters are merged; fragment values win because
// implicit flows (Google id_token, Facebook token) deliver tokens there.
func ParseRedirect(rawURL string) (Redirect, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Redirect{}, errors.Join(ErrInvalidRedirect, fmt.Errorf("parse redirect: %w", err))
	}

	values := u.Query()
	if u.Fragment != "" {
		frag, err := url.ParseQuery(u.Fragment)
		if err != nil {
			return Redirect{}, errors.Join(ErrInvalidRedirect, fmt.Errorf("parse fragment: %w", err))
		}
		for k, v := range frag {
			values[k] = v
		}
	}

	return RedirectFromValues(values), nil
}

// RedirectFromValues classifies redirect parameters (query, fragment or
// form_post body) into a Redirect.
func RedirectFromValues(values url.Values) Redirect {
	params := make(map[string]string, len(values))
	for k := range values {
		params[k] = values.Get(k)
	}

	code := params["error"]
	switch {
	case isCancellation(code, params["error_reason"]):
		return Redirect{Type: RedirectCancel, Params: params, Error: code}
	case code != "":
		msg := code
		if desc := params["error_description"]; desc != "" {
			msg = code + ": " + desc
		}
		return Redirect{Type: RedirectError, Params: params, Error: msg}
	}
	return Redirect{Type: RedirectSuccess, Params: params}
}

func isCancellation(code, reason string) bool {
	switch code {
	case "access_denied", "user_cancelled_login", "user_cancelled_authorize":
		return true
	}
	return reason == "user_denied"
}
