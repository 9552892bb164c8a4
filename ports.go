package authbridge

import (
	"context"
	"strings"

	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// Prompter presents a web authorization request and returns the redirect
// it produced. A dismissed prompt is reported either as a Redirect of type
// cancel or as an error wrapping oauth.ErrCancelled or context.Canceled.
type Prompter interface {
	Prompt(ctx context.Context, req *oauth.Request, state, nonce string) (oauth.Redirect, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, req *oauth.Request, state, nonce string) (oauth.Redirect, error)

func (f PrompterFunc) Prompt(ctx context.Context, req *oauth.Request, state, nonce string) (oauth.Redirect, error) {
	return f(ctx, req, state, nonce)
}

// RedirectProvider is implemented by prompters that receive the redirect
// at their own URI, such as a loopback listener. The Bridge registers that
// URI in the request instead of the app scheme.
type RedirectProvider interface {
	RedirectURI() string
}

// Platform exposes native Sign in with Apple.
type Platform interface {
	AppleSignInAvailable(ctx context.Context) bool
	PresentAppleSignIn(ctx context.Context, scopes []string, hashedNonce string) (AppleResponse, error)
}

// AppleUser is the user info Apple returns, only on the first sign-in.
type AppleUser struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
}

// FullName joins the given and family names.
func (u AppleUser) FullName() string {
	return strings.TrimSpace(u.GivenName + " " + u.FamilyName)
}

// AppleResponse is the discriminated result of the native Apple prompt.
type AppleResponse struct {
	Type          oauth.RedirectType `json:"type"`
	IdentityToken string             `json:"-"`
	Error         string             `json:"error,omitempty"`
	User          *AppleUser         `json:"user,omitempty"`
}

// AttemptRecorder observes finished attempts. pkg/metrics implements it.
type AttemptRecorder interface {
	AttemptFinished(provider, outcome string)
}
