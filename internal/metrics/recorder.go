package metrics

import "time"

// ResultLabel enumerates page result categories for counters.
type ResultLabel string

const (
	ResultChanged     ResultLabel = "changed"
	ResultUnchanged   ResultLabel = "unchanged"
	ResultNoContainer ResultLabel = "no_container"
	ResultFailed      ResultLabel = "failed"
)

// Recorder defines observability hooks for page and run metrics.
type Recorder interface {
	ObservePageDuration(d time.Duration)
	IncPageResult(result ResultLabel)
	AddEntries(kind string, n int)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(time.Duration) {}
func (NoopRecorder) IncPageResult(ResultLabel)         {}
func (NoopRecorder) AddEntries(string, int)            {}
func (NoopRecorder) ObserveRunDuration(time.Duration)  {}
