package metrics

import "time"

// MultiSink fans matching results out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMatches forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordMatches(results []MatchResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordMatches(results); err != nil {
			return err
		}
	}
	return nil
}

// RecordCycle forwards cycle metrics when supported by the sink.
func (m *MultiSink) RecordCycle(pending int, elapsed time.Duration) error {
	for _, s := range m.Sinks {
		if cr, ok := s.(CycleRecorder); ok {
			if err := cr.RecordCycle(pending, elapsed); err != nil {
				return err
			}
		}
	}
	return nil
}
