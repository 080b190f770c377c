package metrics

import (
	"github.com/kilianp07/auslib/core/factory"
	coremetrics "github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/infra/logger"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c PromConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSink(c)
	})

	_ = coremetrics.RegisterMetricsSink("log", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewLogSink(logger.New("metrics")), nil
	})
}
