package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authbridge"
	"github.com/dmitrymomot/authbridge/pkg/cache"
	"github.com/dmitrymomot/authbridge/pkg/config"
	"github.com/dmitrymomot/authbridge/pkg/credential"
	"github.com/dmitrymomot/authbridge/pkg/health"
	"github.com/dmitrymomot/authbridge/pkg/i18n"
	"github.com/dmitrymomot/authbridge/pkg/identitytoolkit"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/metrics"
	"github.com/dmitrymomot/authbridge/pkg/nonce"
	"github.com/dmitrymomot/authbridge/pkg/redis"
	"github.com/dmitrymomot/authbridge/pkg/session"
)

// runtime holds what every subcommand shares, built once in PersistentPreRunE.
type runtime struct {
	configFile  string
	envFiles    []string
	locale      string
	jsonOut     bool
	metricsFile string

	cfg      config.Config
	log      *slog.Logger
	msgs     *i18n.Messages
	sessions session.Store
	nonces   *nonce.Tracker
	registry *prometheus.Registry
	recorder *metrics.Recorder
	persist  bool
	checks   health.Checks
	closers  []func() error
}

func (rt *runtime) init(ctx context.Context) error {
	opts := []config.Option{config.WithDotEnv(rt.envFiles...)}
	if rt.configFile != "" {
		opts = append(opts, config.WithFile(rt.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	if rt.locale == "" {
		rt.locale = cfg.Locale
	}

	// Logs go to stderr so command output on stdout stays clean.
	rt.log = logger.NewWithSentryWriter(os.Stderr, cfg.LogLevel, cfg.Sentry, logger.AttemptExtractors()...)
	rt.msgs = i18n.Default()

	rt.registry = prometheus.NewRegistry()
	rec, err := metrics.New(rt.registry)
	if err != nil {
		return err
	}
	rt.recorder = rec
	rt.checks = health.Checks{
		"config": func(context.Context) error { return cfg.Validate() },
		"identity_backend": func(context.Context) error {
			_, err := rt.backend()
			return err
		},
		"nonce": func(context.Context) error {
			pair, err := nonce.NewBuilder().Build()
			if err != nil {
				return err
			}
			return pair.Verify()
		},
	}

	if cfg.RedisURL == "" {
		sessions := cache.NewMemory[session.Session]()
		used := cache.NewMemory[bool]()
		rt.closers = append(rt.closers, sessions.Close, used.Close)
		rt.sessions = session.NewCacheStore(sessions)
		rt.nonces = nonce.NewTracker(used, nonce.DefaultTrackerTTL)
		return nil
	}

	client, err := redis.Open(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	rt.closers = append(rt.closers, client.Close)
	rt.checks["redis"] = redis.Healthcheck(client)
	rt.sessions = session.NewCacheStore(cache.NewRedis[session.Session](client, nil, cache.WithPrefix("authbridge:session")))
	rt.nonces = nonce.NewTracker(cache.NewRedis[bool](client, nil, cache.WithPrefix("authbridge:nonce")), nonce.DefaultTrackerTTL)
	rt.persist = true
	return nil
}

// close flushes metrics and releases stores. It is safe to call twice.
func (rt *runtime) close() error {
	var errs []error
	if rt.metricsFile != "" && rt.registry != nil {
		// node_exporter textfile collector format.
		if err := prometheus.WriteToTextfile(rt.metricsFile, rt.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
		rt.registry = nil
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// wrap releases the runtime after run whether or not it failed. Cobra skips
// post-run hooks on error, which would drop the metrics of a failed sign-in.
func (rt *runtime) wrap(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return errors.Join(run(cmd, args), rt.close())
	}
}

func (rt *runtime) backend() (*identitytoolkit.Client, error) {
	return identitytoolkit.New(rt.cfg.Firebase)
}

func (rt *runtime) exchanger() (*credential.Exchanger, error) {
	backend, err := rt.backend()
	if err != nil {
		return nil, err
	}
	return credential.NewExchanger(backend,
		credential.WithSessionStore(rt.sessions),
		credential.WithNonceTracker(rt.nonces),
		credential.WithLogger(rt.log),
		credential.WithRecorder(rt.recorder),
	), nil
}

func (rt *runtime) bridge() (*authbridge.Bridge, error) {
	backend, err := rt.backend()
	if err != nil {
		return nil, err
	}
	return authbridge.New(
		authbridge.WithApp(rt.cfg.App),
		authbridge.WithGoogle(rt.cfg.Google),
		authbridge.WithFacebook(rt.cfg.Facebook),
		authbridge.WithApple(rt.cfg.Apple),
		authbridge.WithBackend(backend, credential.WithNonceTracker(rt.nonces)),
		authbridge.WithSessionStore(rt.sessions),
		authbridge.WithRecorder(rt.recorder),
		authbridge.WithLogger(rt.log),
	)
}

func (rt *runtime) printResult(w io.Writer, res credential.Result) error {
	if rt.jsonOut {
		return writeJSON(w, res)
	}
	if _, err := fmt.Fprintln(w, rt.msgs.Result(rt.locale, res)); err != nil {
		return err
	}
	if res.Success && res.User != nil {
		_, err := fmt.Fprintf(w, "user_id=%s email=%s\n", res.User.ID, res.User.Email)
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
