package logger

import (
	"context"
	"log/slog"
)

type attemptKey struct{}

type attempt struct {
	id       string
	provider string
}

// WithAttempt tags ctx with a sign-in attempt. Loggers built with
// AttemptExtractors add attempt_id and provider to every record logged
// with that context.
func WithAttempt(ctx context.Context, id, provider string) context.Context {
	return context.WithValue(ctx, attemptKey{}, attempt{id: id, provider: provider})
}

// AttemptID returns the attempt id stored by WithAttempt.
func AttemptID(ctx context.Context) (string, bool) {
	a, ok := ctx.Value(attemptKey{}).(attempt)
	if !ok || a.id == "" {
		return "", false
	}
	return a.id, true
}

// Provider returns the provider stored by WithAttempt.
func Provider(ctx context.Context) (string, bool) {
	a, ok := ctx.Value(attemptKey{}).(attempt)
	if !ok || a.provider == "" {
		return "", false
	}
	return a.provider, true
}

// AttemptIDExtractor adds attempt_id.
func AttemptIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := AttemptID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("attempt_id", id), true
}

// ProviderExtractor adds provider unless the record already sets it.
func ProviderExtractor(ctx context.Context) (slog.Attr, bool) {
	p, ok := Provider(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("provider", p), true
}

// AttemptExtractors returns the extractors used for sign-in flows.
func AttemptExtractors() []ContextExtractor {
	return []ContextExtractor{AttemptIDExtractor, ProviderExtractor}
}
