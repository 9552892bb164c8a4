// Package metrics records sign-in attempts and credential exchanges as
// Prometheus metrics.
//
//	authbridge_signin_attempts_total{provider,outcome}
//	authbridge_exchange_duration_seconds{provider,outcome}
//
// outcome is "success" or a credential.ErrorKind string. A dismissed prompt
// is counted as "user_cancelled", separate from real failures.
//
// A Recorder registers against the Registerer it is given; pass a private
// prometheus.NewRegistry() in tests.
package metrics
