package mirror

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels the terminal state of one classification request.
type Outcome string

// Pipeline outcomes.
const (
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeMissingUser    Outcome = "missing_user_message"
	OutcomeCrisis         Outcome = "crisis"
	OutcomeModelCrisis    Outcome = "model_crisis"
	OutcomeGatewayError   Outcome = "gateway_error"
	OutcomeFallback       Outcome = "fallback"
	OutcomeClassified     Outcome = "classified"
)

// Metrics records pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	outcomes       *prometheus.CounterVec
	buckets        *prometheus.CounterVec
	gatewayLatency prometheus.Histogram
}

// NewMetrics registers the pipeline collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mirror",
			Name:      "requests_total",
			Help:      "Classification requests by terminal outcome",
		}, []string{"outcome"}),
		buckets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mirror",
			Name:      "responses_by_bucket_total",
			Help:      "Successful responses by bucket",
		}, []string{"bucket"}),
		gatewayLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mirror",
			Name:      "gateway_duration_seconds",
			Help:      "Completion gateway call latency",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
}

func (m *Metrics) observeOutcome(o Outcome) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) observeBucket(b string) {
	if m == nil {
		return
	}
	m.buckets.WithLabelValues(b).Inc()
}

func (m *Metrics) observeGateway(d time.Duration) {
	if m == nil {
		return
	}
	m.gatewayLatency.Observe(d.Seconds())
}
