package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/metrics"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func labels(m *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, l := range m.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r, err := metrics.New(reg)
	require.NoError(t, err)

	r.AttemptFinished("google", "success")
	r.AttemptFinished("google", "success")
	r.AttemptFinished("apple", "user_cancelled")
	r.ObserveExchange("facebook", "invalid_token", 150*time.Millisecond)

	attempts := family(t, reg, "authbridge_signin_attempts_total")
	require.Len(t, attempts.GetMetric(), 2)
	for _, m := range attempts.GetMetric() {
		l := labels(m)
		switch l["provider"] {
		case "google":
			require.Equal(t, "success", l["outcome"])
			require.InDelta(t, 2, m.GetCounter().GetValue(), 0)
		case "apple":
			require.Equal(t, "user_cancelled", l["outcome"])
			require.InDelta(t, 1, m.GetCounter().GetValue(), 0)
		default:
			t.Fatalf("unexpected provider %q", l["provider"])
		}
	}

	exchange := family(t, reg, "authbridge_exchange_duration_seconds")
	require.Len(t, exchange.GetMetric(), 1)
	h := exchange.GetMetric()[0].GetHistogram()
	require.EqualValues(t, 1, h.GetSampleCount())
	require.InDelta(t, 0.15, h.GetSampleSum(), 0.001)
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first, err := metrics.New(reg)
	require.NoError(t, err)
	second, err := metrics.New(reg)
	require.NoError(t, err)

	first.AttemptFinished("google", "success")
	second.AttemptFinished("google", "success")

	m := family(t, reg, "authbridge_signin_attempts_total").GetMetric()
	require.Len(t, m, 1)
	require.InDelta(t, 2, m[0].GetCounter().GetValue(), 0)
}

func TestNew_Conflict(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "authbridge_signin_attempts_total",
		Help: "conflicting",
	}))

	_, err := metrics.New(reg)
	require.ErrorIs(t, err, metrics.ErrRegister)
}
