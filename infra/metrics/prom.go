package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/openuam/uamd/core/metrics"
)

// PromSink records matching outcomes in Prometheus metrics.
type PromSink struct {
	matches *prometheus.CounterVec
	pending prometheus.Gauge
	cycles  prometheus.Histogram
}

// NewPromSink registers the matching metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "uamd_match_events_total",
		Help: "Total number of request matching outcomes",
	}, []string{"outcome"})
	pending := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uamd_pending_requests",
		Help: "Requests left in the queue after a matching cycle",
	})
	cycles := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "uamd_match_cycle_seconds",
		Help:    "Wall time of one matching cycle",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(matches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			matches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pending); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pending = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cycles); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cycles = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{matches: matches, pending: pending, cycles: cycles}, nil
}

// RecordMatches increments the outcome counter for each result.
func (s *PromSink) RecordMatches(results []coremetrics.MatchResult) error {
	for _, r := range results {
		s.matches.WithLabelValues(r.Outcome).Inc()
	}
	return nil
}

// RecordCycle tracks queue depth and cycle cost.
func (s *PromSink) RecordCycle(pending int, elapsed time.Duration) error {
	s.pending.Set(float64(pending))
	s.cycles.Observe(elapsed.Seconds())
	return nil
}
