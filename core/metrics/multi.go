package metrics

import "errors"

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCompile forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordCompile(ev CompileEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCompile(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordMaterialize forwards the event to sinks that support it.
func (m *MultiSink) RecordMaterialize(ev MaterializeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(MaterializeRecorder); ok {
			if err := rec.RecordMaterialize(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink that buffers output and joins their errors.
func (m *MultiSink) Flush() error {
	var errs []error
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			errs = append(errs, f.Flush())
		}
	}
	return errors.Join(errs...)
}
