// Package metrics provides Prometheus instrumentation for menuflow streams.
package metrics

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	gferrors "github.com/vnykmshr/menuflow/pkg/common/errors"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace overrides it.
const DefaultNamespace = "menuflow"

// Registry holds all metric instances for stream pipelines.
type Registry struct {
	// StreamOperations counts terminal operations that started evaluation.
	StreamOperations *prometheus.CounterVec
	// StreamItems counts elements delivered to terminal operations.
	StreamItems *prometheus.CounterVec
	// StreamSourceReads counts elements pulled from stream sources.
	StreamSourceReads *prometheus.CounterVec
	// StreamErrors counts failed terminal operations, reuse attempts included.
	StreamErrors *prometheus.CounterVec
	// StreamBufferSize reports how many elements the last sort barrier held.
	StreamBufferSize *prometheus.GaugeVec
}

type cacheKey struct {
	reg       prometheus.Registerer
	namespace string
	labels    string
}

var (
	cacheMu sync.Mutex
	cache   = make(map[cacheKey]*Registry)
)

// NewRegistry returns the metrics registry for the given Prometheus
// registerer under the default namespace. Repeated calls with the same
// registerer return the same Registry.
func NewRegistry(reg prometheus.Registerer) (*Registry, error) {
	return lookup(reg, DefaultNamespace, nil)
}

// New builds a Registry from config. It returns nil and no error when
// metrics are disabled. Registration fails when the registerer already holds
// collectors of the same names with different const labels.
func New(config Config) (*Registry, error) {
	if !config.Enabled {
		return nil, nil
	}

	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return lookup(config.Registry, namespace, config.Labels)
}

// lookup returns the cached Registry for reg, namespace and labels, building
// and registering it on first use. Registerers that cannot be map keys are
// never cached. A nil reg means prometheus.DefaultRegisterer.
func lookup(reg prometheus.Registerer, namespace string, labels prometheus.Labels) (*Registry, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if !reflect.TypeOf(reg).Comparable() {
		return newRegistry(reg, namespace, labels)
	}

	key := cacheKey{reg: reg, namespace: namespace, labels: labelKey(labels)}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if r, ok := cache[key]; ok {
		return r, nil
	}
	r, err := newRegistry(reg, namespace, labels)
	if err != nil {
		return nil, err
	}
	cache[key] = r
	return r, nil
}

func labelKey(labels prometheus.Labels) string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(labels)) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(labels[name])
		b.WriteByte(',')
	}
	return b.String()
}

func newRegistry(reg prometheus.Registerer, namespace string, labels prometheus.Labels) (*Registry, error) {
	var (
		r   Registry
		err error
	)

	r.StreamOperations, err = register(reg, namespace, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stream",
			Name:        "operations_total",
			Help:        "Total number of terminal stream operations",
			ConstLabels: labels,
		},
		[]string{"operation", "stream_name"},
	))
	if err != nil {
		return nil, err
	}

	r.StreamItems, err = register(reg, namespace, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stream",
			Name:        "items_processed_total",
			Help:        "Total number of items delivered to terminal operations",
			ConstLabels: labels,
		},
		[]string{"operation", "stream_name"},
	))
	if err != nil {
		return nil, err
	}

	r.StreamSourceReads, err = register(reg, namespace, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stream",
			Name:        "source_reads_total",
			Help:        "Total number of items pulled from stream sources",
			ConstLabels: labels,
		},
		[]string{"stream_name"},
	))
	if err != nil {
		return nil, err
	}

	r.StreamErrors, err = register(reg, namespace, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stream",
			Name:        "errors_total",
			Help:        "Total number of stream processing errors",
			ConstLabels: labels,
		},
		[]string{"operation", "stream_name"},
	))
	if err != nil {
		return nil, err
	}

	r.StreamBufferSize, err = register(reg, namespace, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "stream",
			Name:        "buffer_size",
			Help:        "Number of elements buffered by the last sort barrier",
			ConstLabels: labels,
		},
		[]string{"stream_name"},
	))
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// register adds c to reg, or returns the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, namespace string, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, gferrors.NewOperationError("metrics", "register", err).WithContext("namespace " + namespace)
	}
	return c, nil
}
