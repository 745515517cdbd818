// Package metrics defines the sink interface through which prediction
// activity is recorded. Implementations live under infra/metrics and can be
// combined with a MultiSink; the core never depends on a concrete backend.
package metrics

import "time"

// PredictionEvent describes one completed (or failed) prediction call.
type PredictionEvent struct {
	Floor    string
	Points   int
	Duration time.Duration
	Outcome  string // "ok", "no_history", "unknown_floor" or "failed"
	Time     time.Time
}

// Sink records prediction events.
type Sink interface {
	RecordPrediction(ev PredictionEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordPrediction implements Sink.
func (NopSink) RecordPrediction(PredictionEvent) error { return nil }
