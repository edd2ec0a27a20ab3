package stream

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	gferrors "github.com/vnykmshr/menuflow/pkg/common/errors"
	"github.com/vnykmshr/menuflow/pkg/metrics"
)

// lineage is the state shared by a root stream and every stream derived from
// it. It is referenced, never copied, by each link of the chain.
type lineage struct {
	id   string
	name string

	// consumed moves from false to true exactly once and never resets.
	consumed atomic.Bool

	closeOnce sync.Once
	closer    func() error
	closeErr  error

	logger  *zap.Logger
	metrics *metrics.Registry
	reads   prometheus.Counter
}

func newLineage(config Config, closer func() error) *lineage {
	name := config.Name
	if name == "" {
		name = "stream"
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &lineage{
		id:     uuid.NewString(),
		name:   name,
		closer: closer,
	}
	l.logger = logger.With(zap.String("stream", name), zap.String("stream_id", l.id))

	reg, err := metrics.New(config.Metrics)
	if err != nil {
		l.logger.Warn("stream metrics disabled", zap.Error(err))
	}
	l.metrics = reg

	if l.metrics != nil {
		l.reads = l.metrics.StreamSourceReads.WithLabelValues(name)
	}

	return l
}

// acquire claims the lineage for the terminal operation op. It fails with a
// ReuseError when another terminal operation, or Close, got there first.
func (l *lineage) acquire(op string) error {
	if l.consumed.CompareAndSwap(false, true) {
		if l.metrics != nil {
			l.metrics.StreamOperations.WithLabelValues(op, l.name).Inc()
		}
		l.logger.Debug("terminal operation started", zap.String("operation", op))
		return nil
	}

	l.logger.Warn("stream reused after consumption", zap.String("operation", op))
	l.failed(op)
	return &gferrors.ReuseError{StreamID: l.id, Operation: op}
}

// release closes the source once.
func (l *lineage) release() error {
	l.closeOnce.Do(func() {
		if l.closer != nil {
			l.closeErr = l.closer()
		}
	})
	return l.closeErr
}

func (l *lineage) sourceRead() {
	if l.reads != nil {
		l.reads.Inc()
	}
}

func (l *lineage) delivered(op string, items int64) {
	if l.metrics != nil {
		l.metrics.StreamItems.WithLabelValues(op, l.name).Add(float64(items))
	}
	l.logger.Debug("terminal operation finished", zap.String("operation", op), zap.Int64("items", items))
}

func (l *lineage) failed(op string) {
	if l.metrics != nil {
		l.metrics.StreamErrors.WithLabelValues(op, l.name).Inc()
	}
}

// operationError wraps a failure of the terminal operation op with the
// stream name.
func (l *lineage) operationError(op string, cause error) error {
	return gferrors.NewOperationError("stream", op, cause).WithContext("stream=" + l.name)
}

func (l *lineage) buffered(size int) {
	if l.metrics != nil {
		l.metrics.StreamBufferSize.WithLabelValues(l.name).Set(float64(size))
	}
	l.logger.Debug("sort barrier drained upstream", zap.Int("buffered", size))
}
