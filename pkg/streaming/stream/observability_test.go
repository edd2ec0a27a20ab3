package stream

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vnykmshr/menuflow/internal/testutil"
	"github.com/vnykmshr/menuflow/pkg/metrics"
)

func instrumented(t *testing.T, data []int) (Stream[int], *metrics.Registry, *observer.ObservedLogs) {
	t.Helper()

	promReg := prometheus.NewRegistry()
	core, logs := observer.New(zapcore.DebugLevel)

	s := FromSliceWithConfig(data, Config{
		Name:    "numbers",
		Logger:  zap.New(core),
		Metrics: metrics.Config{Enabled: true, Registry: promReg},
	})
	reg, err := metrics.NewRegistry(promReg)
	testutil.AssertNoError(t, err)
	return s, reg, logs
}

func TestMetricsShowShortCircuit(t *testing.T) {
	s, reg, _ := instrumented(t, []int{1, 2, 3, 4, 5, 6, 7, 8})

	result, err := s.Filter(func(x int) bool { return x%2 == 0 }).Limit(2).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDiff(t, result, []int{2, 4})

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamOperations.WithLabelValues("ToSlice", "numbers")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("ToSlice", "numbers")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamSourceReads.WithLabelValues("numbers")), 4.0)
}

func TestMetricsSortBarrier(t *testing.T) {
	s, reg, logs := instrumented(t, []int{5, 3, 9, 1})

	result, err := s.Sorted(intCompare).Limit(1).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDiff(t, result, []int{1})

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamSourceReads.WithLabelValues("numbers")), 4.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamBufferSize.WithLabelValues("numbers")), 4.0)

	entries := logs.FilterMessage("sort barrier drained upstream").All()
	testutil.AssertEqual(t, len(entries), 1)
	testutil.AssertEqual[any](t, entries[0].ContextMap()["buffered"], int64(4))
}

func TestMetricsAndLogsOnReuse(t *testing.T) {
	s, reg, logs := instrumented(t, []int{1, 2})

	testutil.AssertNoError(t, s.ForEach(context.Background(), func(int) {}))
	testutil.AssertError(t, s.ForEach(context.Background(), func(int) {}))

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamOperations.WithLabelValues("ForEach", "numbers")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamErrors.WithLabelValues("ForEach", "numbers")), 1.0)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	testutil.AssertEqual(t, len(warnings), 1)
	testutil.AssertEqual(t, warnings[0].Message, "stream reused after consumption")
	testutil.AssertEqual[any](t, warnings[0].ContextMap()["stream"], "numbers")

	started := logs.FilterMessage("terminal operation started").All()
	testutil.AssertEqual(t, len(started), 1)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	testutil.AssertEqual(t, cfg.Name, "stream")
	testutil.AssertEqual(t, cfg.Metrics.Enabled, false)
	if cfg.Logger == nil {
		t.Fatal("default logger should not be nil")
	}

	// a zero Config is usable as well
	count, err := FromSliceWithConfig([]int{1, 2, 3}, Config{}).Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(3))
}

func TestConflictingMetricLabelsDisableMetrics(t *testing.T) {
	promReg := prometheus.NewRegistry()
	core, logs := observer.New(zapcore.WarnLevel)

	plain := FromSliceWithConfig([]int{1, 2, 3}, Config{
		Name:    "plain",
		Logger:  zap.New(core),
		Metrics: metrics.Config{Enabled: true, Registry: promReg},
	})
	labelled := FromSliceWithConfig([]int{1, 2, 3}, Config{
		Name:    "labelled",
		Logger:  zap.New(core),
		Metrics: metrics.Config{Enabled: true, Registry: promReg, Labels: prometheus.Labels{"env": "prod"}},
	})

	if labelled.base().root.metrics != nil {
		t.Fatal("conflicting const labels should leave the stream without metrics")
	}
	warnings := logs.FilterMessage("stream metrics disabled").All()
	testutil.AssertEqual(t, len(warnings), 1)
	testutil.AssertEqual[any](t, warnings[0].ContextMap()["stream"], "labelled")

	count, err := labelled.Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(3))

	count, err = plain.Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(3))

	reg, err := metrics.NewRegistry(promReg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamSourceReads.WithLabelValues("plain")), 3.0)
}

func TestLabelledStreamsOnDefaultRegisterer(t *testing.T) {
	config := Config{
		Name:    "labelled-default",
		Metrics: metrics.Config{Enabled: true, Labels: prometheus.Labels{"env": "prod"}},
	}

	first := FromSliceWithConfig([]int{1, 2}, config)
	second := FromSliceWithConfig([]int{3}, config)

	if first.base().root.metrics == nil {
		t.Fatal("expected metrics on the default registerer")
	}
	if first.base().root.metrics != second.base().root.metrics {
		t.Error("streams with the same metrics configuration should share a registry")
	}

	count, err := first.Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(2))
}
