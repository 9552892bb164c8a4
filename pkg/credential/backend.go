package credential

import (
	"context"
	"time"
)

// Identity is what the identity backend returns for a successful sign-in.
type Identity struct {
	ExpiresAt    time.Time
	UserID       string
	Email        string
	DisplayName  string
	PhotoURL     string
	Provider     string
	IDToken      string
	RefreshToken string
	IsNewUser    bool
}

// Backend is the identity backend's sign-in-with-credential primitive.
// Implementations return errors wrapping ErrInvalidToken, ErrNonceMismatch,
// ErrUnavailable or ErrNetwork so the exchanger can classify them.
type Backend interface {
	SignInWithCredential(ctx context.Context, c Credential) (*Identity, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, c Credential) (*Identity, error)

// SignInWithCredential calls f.
func (f BackendFunc) SignInWithCredential(ctx context.Context, c Credential) (*Identity, error) {
	return f(ctx, c)
}
