package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/auslib/config"
	"github.com/kilianp07/auslib/core/library"
	coremetrics "github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/core/model"
	"github.com/kilianp07/auslib/core/schedule"
	"github.com/kilianp07/auslib/infra/logger"
	_ "github.com/kilianp07/auslib/infra/metrics"
	"github.com/kilianp07/auslib/infra/modelstore"
	"github.com/kilianp07/auslib/infra/tabular"
)

// Service wires the workbook loader, the schedule compiler, the model store
// and the metrics sinks.
type Service struct {
	cfg     *config.Config
	Store   modelstore.Store
	Library *library.Library
	sink    coremetrics.MetricsSink
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.NewZerologLogger("service", cfg.Logging)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	opts, mode, err := cfg.Compile.Options()
	if err != nil {
		return nil, fmt.Errorf("compile config: %w", err)
	}
	opts = append(opts,
		schedule.WithLogger(logger.NewZerologLogger("compiler", cfg.Logging)),
		schedule.WithMetrics(sink),
	)
	compiler := schedule.NewCompiler(opts...)

	store, err := modelstore.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("model store: %w", err)
	}
	lib := library.New(store,
		library.WithCompiler(compiler, mode),
		library.WithComplexSchedules(cfg.Compile.Schedules),
		library.WithLogger(logger.NewZerologLogger("library", cfg.Logging)),
		library.WithMetrics(sink),
	)
	return &Service{cfg: cfg, Store: store, Library: lib, sink: sink, log: logg}, nil
}

// Load reads the configured workbook.
func (s *Service) Load() (*model.Workbook, error) {
	wb, err := tabular.Load(s.cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.cfg.Input.Path, err)
	}
	return wb, nil
}

// Run applies the workbook to the model store.
func (s *Service) Run(ctx context.Context) (*library.Report, error) {
	wb, err := s.Load()
	if err != nil {
		return nil, err
	}
	rep, err := s.Library.Apply(ctx, wb)
	if err != nil {
		return rep, err
	}
	for key, e := range rep.CompileErrors {
		s.log.Errorf("ruleset %s: %v", key, e)
	}
	for key, e := range rep.Errors {
		s.log.Errorf("%s: %v", key, e)
	}
	return rep, nil
}

// Compile compiles the workbook schedules without touching the store. In
// collect mode the rulesets that compiled are returned with a
// *schedule.BatchError.
func (s *Service) Compile() (schedule.Rulesets, error) {
	wb, err := s.Load()
	if err != nil {
		return nil, err
	}
	return s.Library.Compile(wb)
}

// Close flushes the metrics sinks and closes the store.
func (s *Service) Close() error {
	var errs []error
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		if err := f.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush metrics: %w", err))
		}
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
