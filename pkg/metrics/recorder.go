package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "authbridge"

// Recorder implements credential.Recorder and the bridge's attempt hook.
type Recorder struct {
	attempts *prometheus.CounterVec
	exchange *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
// A nil reg registers with prometheus.DefaultRegisterer. Collectors that are
// already registered are reused.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Finished sign-in attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	exchange := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "exchange_duration_seconds",
		Help:      "Latency of credential exchanges with the identity backend.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider", "outcome"})

	var err error
	if attempts, err = register(reg, attempts); err != nil {
		return nil, err
	}
	if exchange, err = register(reg, exchange); err != nil {
		return nil, err
	}

	return &Recorder{attempts: attempts, exchange: exchange}, nil
}

// AttemptFinished counts one finished sign-in attempt.
func (r *Recorder) AttemptFinished(provider, outcome string) {
	r.attempts.WithLabelValues(provider, outcome).Inc()
}

// ObserveExchange records the duration of one exchange.
func (r *Recorder) ObserveExchange(provider, outcome string, d time.Duration) {
	r.exchange.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Join(ErrRegister, fmt.Errorf("register: %w", err))
	}
	return c, nil
}
