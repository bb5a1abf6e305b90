package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultNoop    ResultLabel = "noop"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for the studio. Implementations may
// forward to Prometheus or drop everything (NoopRecorder).
type Recorder interface {
	// IncCommand counts one applied command by op; unaddressable commands
	// are counted as noop.
	IncCommand(op string, result ResultLabel)
	// IncMergeOutcome counts generator merges and the bullets they inserted.
	IncMergeOutcome(outcome string, inserted int)
	ObserveRenderDuration(format string, d time.Duration, result ResultLabel)
	IncRenderRetry(format string)
	ObserveExternalCall(op string, d time.Duration, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) IncCommand(string, ResultLabel)                           {}
func (NoopRecorder) IncMergeOutcome(string, int)                              {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncRenderRetry(string)                                    {}
func (NoopRecorder) ObserveExternalCall(string, time.Duration, ResultLabel)   {}

// Result maps an error to a result label.
func Result(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
