package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/auslib/core/factory"
	coremetrics "github.com/kilianp07/auslib/core/metrics"
)

func TestPromSink_RecordCompile(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordCompile(coremetrics.CompileEvent{Key: "OfficeA-Lighting", Duration: time.Millisecond}))
	require.NoError(t, sink.RecordCompile(coremetrics.CompileEvent{Key: "OfficeA-Occupancy", Duration: time.Millisecond}))
	require.NoError(t, sink.RecordCompile(coremetrics.CompileEvent{Key: "OfficeA-Equipment", ErrKind: "unknown_day_type"}))

	expected := `
# HELP auslib_rulesets_compiled_total Rulesets compiled, by result
# TYPE auslib_rulesets_compiled_total counter
auslib_rulesets_compiled_total{result="error"} 1
auslib_rulesets_compiled_total{result="ok"} 2
`
	assert.NoError(t, testutil.CollectAndCompare(sink.compiled, strings.NewReader(expected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.errors.WithLabelValues("unknown_day_type")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSink_RecordMaterialize(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordMaterialize(coremetrics.MaterializeEvent{Kind: "space_type", Name: "Office"}))
	require.NoError(t, sink.RecordMaterialize(coremetrics.MaterializeEvent{Kind: "space_type", Name: "Lab", Err: errors.New("boom")}))

	expected := `
# HELP auslib_objects_materialized_total Model objects handed to the store, by kind and result
# TYPE auslib_objects_materialized_total counter
auslib_objects_materialized_total{kind="space_type",result="error"} 1
auslib_objects_materialized_total{kind="space_type",result="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "auslib_objects_materialized_total"))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	require.NoError(t, err)
	b, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	require.NoError(t, err)

	require.NoError(t, a.RecordCompile(coremetrics.CompileEvent{Key: "k"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.compiled.WithLabelValues("ok")))
}

func TestPromSink_FlushTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auslib.prom")
	sink, err := NewPromSink(PromConfig{Textfile: path})
	require.NoError(t, err)
	require.NoError(t, sink.RecordCompile(coremetrics.CompileEvent{Key: "k"}))
	require.NoError(t, sink.Flush())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `auslib_rulesets_compiled_total{result="ok"} 1`)
}

func TestPromSink_FlushWithoutTextfile(t *testing.T) {
	sink, err := NewPromSink(PromConfig{})
	require.NoError(t, err)
	assert.NoError(t, sink.Flush())
}

func TestFactory_RegisteredSinks(t *testing.T) {
	s, err := coremetrics.NewMetricsSink(nil)
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, s)
	// the prometheus sink uses its own registry, so it can be created twice
	for i := 0; i < 2; i++ {
		s, err = coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "prometheus"}})
		require.NoError(t, err)
		assert.IsType(t, &PromSink{}, s)
	}

	s, err = coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "prometheus"}, {Type: "log"}})
	require.NoError(t, err)
	multi, ok := s.(*coremetrics.MultiSink)
	require.True(t, ok)
	assert.Len(t, multi.Sinks, 2)
}
