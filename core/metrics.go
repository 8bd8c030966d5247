package core

import "time"

// Ensure NoopRecorder implements Recorder at compile time
var _ Recorder = (*NoopRecorder)(nil)

// Recorder defines the interface for recording engine metrics.
// Implementations include metrics.Metrics (Prometheus-based) and
// NoopRecorder.
type Recorder interface {
	// RecordAuthAttempt records one authentication aggregation with its
	// terminal outcome ("success", "failure" or "skip").
	RecordAuthAttempt(realm, outcome string, duration time.Duration)

	// RecordMasquerade records one masquerade call with its outcome
	// ("success", "failure", "skip", "denied", "invalid_target",
	// "restricted" or "unconfigured").
	RecordMasquerade(outcome string)
}

// NoopRecorder discards all metrics. Used when no recorder is wired in.
type NoopRecorder struct{}

func (NoopRecorder) RecordAuthAttempt(realm, outcome string, duration time.Duration) {}
func (NoopRecorder) RecordMasquerade(outcome string)                                 {}
