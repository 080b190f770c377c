package metrics

import (
	coremetrics "github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/infra/logger"
)

// LogSink writes events to a logger: successes at debug level, failures as
// warnings.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a sink writing to l.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &LogSink{log: l}
}

func (s *LogSink) RecordCompile(ev coremetrics.CompileEvent) error {
	fields := map[string]any{
		"key":         ev.Key,
		"profiles":    ev.Profiles,
		"rules":       ev.Rules,
		"duration_ms": float64(ev.Duration.Microseconds()) / 1000,
	}
	if ev.ErrKind != "" {
		s.log.Warnf("compile %s failed: %s", ev.Key, ev.ErrKind)
		return nil
	}
	s.log.Debugw("compile", fields)
	return nil
}

func (s *LogSink) RecordMaterialize(ev coremetrics.MaterializeEvent) error {
	if ev.Err != nil {
		s.log.Warnf("materialize %s %q: %v", ev.Kind, ev.Name, ev.Err)
		return nil
	}
	s.log.Debugw("materialize", map[string]any{"kind": ev.Kind, "name": ev.Name})
	return nil
}
