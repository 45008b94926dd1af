package metrics

import "time"

// Outcome labels how a request left a matching cycle.
const (
	OutcomeDirect   = "direct"
	OutcomePooled   = "pooled"
	OutcomeDeferred = "deferred"
)

// MatchResult is a per-request matching outcome to be recorded.
type MatchResult struct {
	RequestID string
	VehicleID string // empty when deferred
	Outcome   string
	Distance  float64 // vehicle-to-origin distance for direct matches
	SimTime   float64 // simulation time of the decision
}

// Sink records matching outcomes for observability purposes.
type Sink interface {
	RecordMatches(results []MatchResult) error
}

// CycleRecorder is implemented by sinks that track per-cycle engine cost.
type CycleRecorder interface {
	RecordCycle(pending int, elapsed time.Duration) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatches([]MatchResult) error { return nil }
