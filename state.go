package authbridge

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// State is the position of a sign-in attempt.
type State string

const (
	StateIdle             State = "idle"
	StateRequestBuilt     State = "request_built"
	StateAwaitingRedirect State = "awaiting_redirect"
	StateTokenReceived    State = "token_received"
	StateExchanging       State = "exchanging"
	StateAuthenticated    State = "authenticated"
	StateFailed           State = "failed"
)

var transitions = map[State][]State{
	StateIdle:             {StateRequestBuilt, StateFailed},
	StateRequestBuilt:     {StateAwaitingRedirect, StateFailed},
	StateAwaitingRedirect: {StateTokenReceived, StateFailed},
	StateTokenReceived:    {StateExchanging, StateFailed},
	StateExchanging:       {StateAuthenticated, StateFailed},
}

// CanTransition reports whether from → to is allowed.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateFailed
}

func (s State) String() string { return string(s) }

// Transition is one step in an attempt's history.
type Transition struct {
	At   time.Time `json:"at"`
	From State     `json:"from"`
	To   State     `json:"to"`
}

// Attempt is a single sign-in attempt. It is created in Idle and never
// leaves a terminal state; retrying means starting a new Attempt.
type Attempt struct {
	ID        string               `json:"id"`
	Provider  oauth.ProviderID     `json:"provider"`
	State     State                `json:"state"`
	ErrorKind credential.ErrorKind `json:"error_kind,omitempty"`
	History   []Transition         `json:"history"`

	now func() time.Time
}

// NewAttempt starts an attempt in Idle.
func NewAttempt(provider oauth.ProviderID) *Attempt {
	return newAttempt(provider, time.Now)
}

func newAttempt(provider oauth.ProviderID, now func() time.Time) *Attempt {
	return &Attempt{
		ID:       uuid.NewString(),
		Provider: provider,
		State:    StateIdle,
		now:      now,
	}
}

// Advance moves the attempt to next.
func (a *Attempt) Advance(next State) error {
	if !CanTransition(a.State, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.State, next)
	}
	a.History = append(a.History, Transition{From: a.State, To: next, At: a.now()})
	a.State = next
	return nil
}

// Fail moves the attempt to Failed with the given kind.
func (a *Attempt) Fail(kind credential.ErrorKind) error {
	if err := a.Advance(StateFailed); err != nil {
		return err
	}
	a.ErrorKind = kind
	return nil
}

// Path returns the visited states in order, starting with Idle.
func (a *Attempt) Path() []State {
	out := make([]State, 0, len(a.History)+1)
	out = append(out, StateIdle)
	for _, t := range a.History {
		out = append(out, t.To)
	}
	return out
}
