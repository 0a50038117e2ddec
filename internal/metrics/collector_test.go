package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() (*Collector, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return NewCollector(registry, "4.0.5"), registry
}

func TestCollector_RecordExecution(t *testing.T) {
	c, registry := newTestCollector()

	c.RecordExecution(enginetypes.StatusPassed, 2*time.Second, 128)
	c.RecordExecution(enginetypes.StatusPassed, time.Second, 0)
	c.RecordExecution(enginetypes.StatusBlocked, time.Second, 10)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.executions.WithLabelValues("Passed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.executions.WithLabelValues("Blocked")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.info.WithLabelValues("4.0.5")))

	count, err := testutil.GatherAndCount(registry, Namespace+"_execution_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP cmdline_engine_executions_total Completed test executions by reported status
# TYPE cmdline_engine_executions_total counter
cmdline_engine_executions_total{status="Blocked"} 1
cmdline_engine_executions_total{status="Passed"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), Namespace+"_executions_total"))
}

func TestCollector_RecordError(t *testing.T) {
	c, _ := newTestCollector()

	c.RecordError(runerrors.KindLaunch)
	c.RecordError(runerrors.KindLaunch)
	c.RecordError(runerrors.KindEmptyScript)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.errors.WithLabelValues("launch")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.errors.WithLabelValues("empty_script")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.errors))
}

func TestCollector_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestCollector()
		newTestCollector()
	})
}

func TestWriteTextfile(t *testing.T) {
	c, registry := newTestCollector()
	c.RecordExecution(enginetypes.StatusFailed, 500*time.Millisecond, 42)

	path := filepath.Join(t.TempDir(), "cmdline_engine.prom")
	require.NoError(t, WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cmdline_engine_executions_total{status="Failed"} 1`)
	assert.Contains(t, string(data), "cmdline_engine_output_bytes_sum 42")
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	assert.NotPanics(t, func() {
		r.RecordExecution(enginetypes.StatusPassed, time.Second, 1)
		r.RecordError(runerrors.KindUnknown)
	})
}
