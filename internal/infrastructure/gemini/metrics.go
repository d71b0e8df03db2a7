package gemini

import (
	"errors"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for AI gateway calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// MustNewMetrics registers the gateway collectors with reg. Registration
// errors panic, as with promauto.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirrorfit",
			Subsystem: "ai",
			Name:      "requests_total",
			Help:      "AI gateway calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mirrorfit",
			Subsystem: "ai",
			Name:      "request_duration_seconds",
			Help:      "Latency of AI gateway calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)
	reg.MustRegister(requests, duration)
	return &Metrics{requests: requests, duration: duration}
}

func (m *Metrics) observe(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	m.requests.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMalformedAIResponse):
		return "malformed"
	case errors.Is(err, domain.ErrNoImageGenerated):
		return "no_image"
	default:
		return "error"
	}
}
