package credential

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// ErrorKind classifies a failed sign-in for the caller.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindUserCancelled ErrorKind = "user_cancelled"
	KindUnavailable   ErrorKind = "unavailable"
	KindInvalidToken  ErrorKind = "invalid_token"
	KindNonceMismatch ErrorKind = "nonce_mismatch"
	KindNetworkError  ErrorKind = "network_error"
	KindCryptoError   ErrorKind = "crypto_error"
	KindUnknown       ErrorKind = "unknown"
)

func (k ErrorKind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k)
}

// User is the identity handed to the UI layer.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Result is the outcome of one sign-in attempt.
// Err keeps the underlying error for logs; ErrorKind is what callers branch on.
type Result struct {
	User      *User     `json:"user,omitempty"`
	Err       error     `json:"-"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Success   bool      `json:"success"`
}

// Succeeded returns a successful result for u.
func Succeeded(u *User) Result {
	return Result{Success: true, User: u}
}

// Failed returns a failed result classified from err.
func Failed(err error) Result {
	return Result{Err: err, ErrorKind: Classify(err)}
}

// Cancelled reports whether the user dismissed the prompt. A cancelled
// attempt is a no-op rather than an error worth surfacing.
func (r Result) Cancelled() bool {
	return r.ErrorKind == KindUserCancelled
}

// Classify maps an error from any stage of the sign-in flow to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrCancelled), errors.Is(err, oauth.ErrCancelled), errors.Is(err, context.Canceled):
		return KindUserCancelled
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, nonce.ErrCrypto), errors.Is(err, oauth.ErrRandom):
		return KindCryptoError
	case errors.Is(err, ErrNonceMismatch), errors.Is(err, nonce.ErrMismatch),
		errors.Is(err, nonce.ErrReused), errors.Is(err, nonce.ErrEmpty):
		return KindNonceMismatch
	case errors.Is(err, ErrInvalidToken), errors.Is(err, oauth.ErrStateMismatch),
		errors.Is(err, oauth.ErrMissingToken):
		return KindInvalidToken
	case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return KindNetworkError
	}
	return KindUnknown
}
