package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated state established by a successful credential exchange.
type Session struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	Provider     string `json:"provider"`
	IDToken      string `json:"id_token,omitempty"`      // backend-issued, not the provider token
	RefreshToken string `json:"refresh_token,omitempty"` // backend-issued
}

// New creates a session for a user. A zero expiresAt means the session
// lasts until explicit sign-out.
func New(userID, provider string, expiresAt time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Provider:  provider,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

// IsAuthenticated returns true if the session carries a user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// IsExpired returns true if the session has a deadline and it has passed.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
