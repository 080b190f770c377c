package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/auslib/core/metrics"
)

// PromConfig configures the Prometheus sink. Runs are short-lived, so metrics
// are written to Textfile in the node exporter textfile format on Flush
// rather than served over HTTP.
type PromConfig struct {
	Textfile string `json:"textfile"`
}

// PromSink records compile and materialisation events in Prometheus metrics.
type PromSink struct {
	gatherer     prometheus.Gatherer
	textfile     string
	compiled     *prometheus.CounterVec
	errors       *prometheus.CounterVec
	duration     prometheus.Histogram
	materialized *prometheus.CounterVec
}

// NewPromSink registers the metrics on a fresh registry.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.NewRegistry())
}

// NewPromSinkWithRegistry registers the metrics on reg. Metrics already
// registered on reg are reused.
func NewPromSinkWithRegistry(cfg PromConfig, reg *prometheus.Registry) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	compiled, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auslib_rulesets_compiled_total",
		Help: "Rulesets compiled, by result",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}
	errs, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auslib_compile_errors_total",
		Help: "Ruleset compilation failures, by error kind",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "auslib_compile_duration_seconds",
		Help:    "Time spent compiling one ruleset",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}))
	if err != nil {
		return nil, err
	}
	materialized, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auslib_objects_materialized_total",
		Help: "Model objects handed to the store, by kind and result",
	}, []string{"kind", "result"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{
		gatherer:     reg,
		textfile:     cfg.Textfile,
		compiled:     compiled,
		errors:       errs,
		duration:     duration,
		materialized: materialized,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// RecordCompile counts the ruleset and observes its compile time.
func (s *PromSink) RecordCompile(ev coremetrics.CompileEvent) error {
	if ev.ErrKind != "" {
		s.compiled.WithLabelValues("error").Inc()
		s.errors.WithLabelValues(ev.ErrKind).Inc()
	} else {
		s.compiled.WithLabelValues("ok").Inc()
	}
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordMaterialize counts the object by kind and result.
func (s *PromSink) RecordMaterialize(ev coremetrics.MaterializeEvent) error {
	result := "ok"
	if ev.Err != nil {
		result = "error"
	}
	s.materialized.WithLabelValues(ev.Kind, result).Inc()
	return nil
}

// Flush writes the textfile when one is configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
