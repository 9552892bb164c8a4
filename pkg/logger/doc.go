// Package logger builds the slog loggers used across authbridge.
//
// Records are JSON on stdout. A LogHandlerDecorator runs ContextExtractors on
// every call so values carried by the context, such as the sign-in attempt
// id, end up on every line without being passed around explicitly.
//
// # Attempts
//
//	log := logger.New(logger.AttemptExtractors()...)
//	ctx = logger.WithAttempt(ctx, attempt.ID, "google")
//	log.InfoContext(ctx, "prompt opened")
//	// {"level":"INFO","msg":"prompt opened","attempt_id":"..."}
//
// Tokens, raw nonces and refresh tokens must never be passed as attributes.
//
// # Sentry
//
// NewWithSentry fans records out to stdout and Sentry. Errors become Sentry
// issues; records at or above SentryConfig.MinLevel are stored as logs. An
// empty DSN, or a failed sentry.Init, degrades to stdout only.
//
// NewNope returns a logger that discards everything and is the default for
// components that accept an optional logger.
package logger
