package metrics

import "time"

// CompileEvent describes the compilation of one ruleset.
type CompileEvent struct {
	Key      string
	Profiles int
	Rules    int
	// ErrKind is empty on success.
	ErrKind  string
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records compile events.
type MetricsSink interface {
	RecordCompile(ev CompileEvent) error
}

// MaterializeEvent describes one object handed to the model.
type MaterializeEvent struct {
	Kind string
	Name string
	Err  error
	Time time.Time
}

// MaterializeRecorder records model materialisation events.
type MaterializeRecorder interface {
	RecordMaterialize(ev MaterializeEvent) error
}

// Flusher is implemented by sinks that buffer output until the end of a run.
type Flusher interface {
	Flush() error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordCompile(CompileEvent) error         { return nil }
func (NopSink) RecordMaterialize(MaterializeEvent) error { return nil }
