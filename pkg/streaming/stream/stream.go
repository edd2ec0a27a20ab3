package stream

import (
	"context"

	"go.uber.org/zap"

	gferrors "github.com/vnykmshr/menuflow/pkg/common/errors"
	"github.com/vnykmshr/menuflow/pkg/common/validation"
	"github.com/vnykmshr/menuflow/pkg/metrics"
)

// ErrStreamConsumed matches, via errors.Is, the error returned when a terminal
// operation is invoked on a stream whose lineage was already consumed or closed.
var ErrStreamConsumed = gferrors.ErrIllegalState

// Stream represents a sequence of elements supporting sequential operations.
// Streams are lazy; computation on the source data is only performed when a terminal
// operation is initiated, and source elements are consumed only as needed.
//
// A stream and every stream derived from it share one lineage. The first terminal
// operation on any member of the lineage consumes all of them.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	// Use MapTo to change the element type.
	Map(mapper func(T) T) Stream[T]

	// Sorted returns a stream consisting of elements sorted by compare. The sort is
	// stable. Sorted is a barrier: it drains its upstream before emitting anything.
	// The compare function should return negative if a < b, 0 if a == b, positive if a > b.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip returns a stream consisting of remaining elements after skipping n elements.
	Skip(n int64) Stream[T]

	// Limit returns a stream consisting of elements truncated to be no longer than maxSize.
	// Upstream evaluation stops once maxSize elements have been emitted.
	Limit(maxSize int64) Stream[T]

	// Peek returns a stream consisting of elements, additionally performing the provided
	// action on each element as elements are consumed.
	Peek(action func(T)) Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs an action for each element of the stream.
	ForEach(ctx context.Context, action func(T)) error

	// ToSlice returns a slice containing all elements in emission order.
	ToSlice(ctx context.Context) ([]T, error)

	// Reduce performs a reduction on elements using the provided identity and combining function.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if present.
	FindFirst(ctx context.Context) (T, bool, error)

	// Min returns the minimum element according to the provided comparator.
	Min(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Max returns the maximum element according to the provided comparator.
	Max(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Iterator consumes the stream and returns a pull iterator over its elements.
	// The iterator must be stopped.
	Iterator(ctx context.Context) (Iterator[T], error)

	// Stream control

	// Describe reports the stages of the pipeline, source first, with the
	// evaluation mode of each. It does not consume the stream.
	Describe() []StageInfo

	// Close marks the lineage consumed and releases the source.
	Close() error

	// IsClosed returns true if the lineage was consumed or closed.
	IsClosed() bool

	base() *stream[T]
}

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// Config holds stream configuration options.
type Config struct {
	// Name labels metrics and log entries of the stream.
	// Default: "stream"
	Name string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config

	// Logger receives debug entries for terminal operations and sort barriers.
	// Default: no-op logger
	Logger *zap.Logger
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Name:   "stream",
		Logger: zap.NewNop(),
	}
}

// stream is the default implementation of Stream. It is an immutable
// description: a lineage, the last stage of the chain, and the first argument
// error recorded while the chain was built.
type stream[T any] struct {
	root  *lineage
	stage stage[T]
	err   error
}

// New creates a new Stream from a Source.
func New[T any](source Source[T]) Stream[T] {
	return NewWithConfig(source, DefaultConfig())
}

// NewWithConfig creates a new Stream from a Source with the specified configuration.
func NewWithConfig[T any](source Source[T], config Config) Stream[T] {
	err := validation.ValidateNotNil("stream", "source", source)
	if err != nil {
		source = &emptySource[T]{}
	}

	root := newLineage(config, source.Close)
	return &stream[T]{
		root:  root,
		stage: &sourceStage[T]{source: source, root: root},
		err:   err,
	}
}

// FromSlice creates a Stream from a slice.
func FromSlice[T any](slice []T) Stream[T] {
	return New[T](&sliceSource[T]{slice: slice})
}

// FromSliceWithConfig creates a Stream from a slice with the specified configuration.
func FromSliceWithConfig[T any](slice []T, config Config) Stream[T] {
	return NewWithConfig[T](&sliceSource[T]{slice: slice}, config)
}

// Of creates a Stream from the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromChannel creates a Stream from a channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New[T](&channelSource[T]{ch: ch})
}

// Generate creates an infinite Stream from a generator function.
func Generate[T any](generator func() T) Stream[T] {
	return New[T](&generatorSource[T]{generator: generator})
}

// Iterate creates an infinite Stream of seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	return New[T](&iterateSource[T]{current: seed, next: next})
}

// Empty creates an empty Stream.
func Empty[T any]() Stream[T] {
	return New[T](&emptySource[T]{})
}

// MapTo returns a stream of the results of applying mapper to the elements of s.
// Order and count are preserved.
func MapTo[T, R any](s Stream[T], mapper func(T) R) Stream[R] {
	b := s.base()
	return derive[T, R](b, &mapStage[T, R]{upstream: b.stage, mapper: mapper}, nilFunc("mapper", mapper == nil))
}

func (s *stream[T]) base() *stream[T] {
	return s
}

// derive returns the next link of the chain. The first recorded argument
// error wins.
func derive[T, R any](s *stream[T], next stage[R], err error) *stream[R] {
	if s.err != nil {
		err = s.err
	}
	return &stream[R]{root: s.root, stage: next, err: err}
}

func nilFunc(field string, isNil bool) error {
	if !isNil {
		return nil
	}
	return gferrors.NewValidationError("stream", field, nil, "cannot be nil").
		WithHint("provide a valid " + field)
}

// Filter implementation
func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return derive[T, T](s, &filterStage[T]{upstream: s.stage, predicate: predicate}, nilFunc("predicate", predicate == nil))
}

// Map implementation
func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return derive[T, T](s, &mapStage[T, T]{upstream: s.stage, mapper: mapper}, nilFunc("mapper", mapper == nil))
}

// Sorted implementation
func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return derive[T, T](s, &sortStage[T]{upstream: s.stage, compare: compare, root: s.root}, nilFunc("compare", compare == nil))
}

// Skip implementation
func (s *stream[T]) Skip(n int64) Stream[T] {
	return derive[T, T](s, &skipStage[T]{upstream: s.stage, count: n}, validation.ValidateNonNegative("stream", "skip", n))
}

// Limit implementation
func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	return derive[T, T](s, &limitStage[T]{upstream: s.stage, maxSize: maxSize}, validation.ValidateNonNegative("stream", "limit", maxSize))
}

// Peek implementation
func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return derive[T, T](s, &peekStage[T]{upstream: s.stage, action: action}, nilFunc("action", action == nil))
}

// Describe implementation
func (s *stream[T]) Describe() []StageInfo {
	return describe(s.stage.plan())
}

// Close implementation
func (s *stream[T]) Close() error {
	s.root.consumed.Store(true)
	return s.root.release()
}

// IsClosed implementation
func (s *stream[T]) IsClosed() bool {
	return s.root.consumed.Load()
}
