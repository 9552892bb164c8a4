package authbridge

import "errors"

var (
	ErrInvalidTransition  = errors.New("authbridge: invalid state transition")
	ErrNoBackend          = errors.New("authbridge: no credential exchanger or backend configured")
	ErrProviderDisabled   = errors.New("authbridge: provider not configured")
	ErrNoPrompter         = errors.New("authbridge: prompter is required")
	ErrNoSessionStore     = errors.New("authbridge: no session store configured")
	ErrAppleNotSupported  = errors.New("authbridge: native apple sign-in is not available")
	ErrAppleMissingToken  = errors.New("authbridge: apple response has no identity token")
	ErrAppleProviderError = errors.New("authbridge: apple sign-in failed")
)
