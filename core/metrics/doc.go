// Package metrics defines the events emitted while compiling schedules and
// materialising model objects, and the sink interfaces that record them.
// Sinks are created from configuration through a registry of factories; the
// factory returns a MultiSink when several sinks are configured.
package metrics
