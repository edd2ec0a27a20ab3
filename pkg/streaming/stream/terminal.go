package stream

import (
	"cmp"
	"context"
	"iter"
	"strings"
)

// drive evaluates the pipeline for the terminal operation op, pushing every
// emitted element to sink until sink returns false. The lineage is claimed
// before anything else happens, so a reused stream visits no element. A
// non-nil argErr, like an argument error recorded by an intermediate
// operation, is returned after the claim without running the pipeline.
func (s *stream[T]) drive(ctx context.Context, op string, argErr error, sink func(T) bool) error {
	if err := s.root.acquire(op); err != nil {
		return err
	}
	defer func() { _ = s.root.release() }()

	if err := cmp.Or(s.err, argErr); err != nil {
		s.root.failed(op)
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var items int64
	err := s.stage.run(ctx, func(value T) bool {
		items++
		return sink(value)
	})
	s.root.delivered(op, items)

	if err != nil {
		s.root.failed(op)
		return s.root.operationError(op, err)
	}
	return nil
}

// ForEach implementation
func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.drive(ctx, "ForEach", nilFunc("action", action == nil), func(value T) bool {
		action(value)
		return true
	})
}

// ToSlice implementation
func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	result := make([]T, 0)
	err := s.drive(ctx, "ToSlice", nil, func(value T) bool {
		result = append(result, value)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reduce implementation
func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.drive(ctx, "Reduce", nilFunc("accumulator", accumulator == nil), func(value T) bool {
		result = accumulator(result, value)
		return true
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}

// Count implementation
func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.drive(ctx, "Count", nil, func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AnyMatch implementation
func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found := false
	err := s.drive(ctx, "AnyMatch", nilFunc("predicate", predicate == nil), func(value T) bool {
		found = predicate(value)
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// AllMatch implementation
func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	all := true
	err := s.drive(ctx, "AllMatch", nilFunc("predicate", predicate == nil), func(value T) bool {
		all = predicate(value)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// NoneMatch implementation
func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	none := true
	err := s.drive(ctx, "NoneMatch", nilFunc("predicate", predicate == nil), func(value T) bool {
		none = !predicate(value)
		return none
	})
	if err != nil {
		return false, err
	}
	return none, nil
}

// FindFirst implementation
func (s *stream[T]) FindFirst(ctx context.Context) (T, bool, error) {
	var first T
	found := false
	err := s.drive(ctx, "FindFirst", nil, func(value T) bool {
		first, found = value, true
		return false
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return first, found, nil
}

// Min implementation
func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, "Min", nilFunc("compare", compare == nil), func(candidate, current T) bool {
		return compare(candidate, current) < 0
	})
}

// Max implementation
func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, "Max", nilFunc("compare", compare == nil), func(candidate, current T) bool {
		return compare(candidate, current) > 0
	})
}

func (s *stream[T]) extreme(ctx context.Context, op string, argErr error, better func(candidate, current T) bool) (T, bool, error) {
	var best T
	found := false
	err := s.drive(ctx, op, argErr, func(value T) bool {
		if !found || better(value, best) {
			best, found = value, true
		}
		return true
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return best, found, nil
}

// Iterator is a pull iterator over the elements of a consumed stream.
type Iterator[T any] interface {
	// Next returns the next element and true, or the zero value and false once
	// the stream is exhausted, failed, or the iterator was stopped.
	Next() (T, bool)
	// Err returns the error that ended iteration early, if any.
	Err() error
	// Stop ends iteration and releases the source. It is safe to call more than once.
	Stop()
}

// Iterator implementation
func (s *stream[T]) Iterator(ctx context.Context) (Iterator[T], error) {
	const op = "Iterator"

	if err := s.root.acquire(op); err != nil {
		return nil, err
	}
	if s.err != nil {
		s.root.failed(op)
		_ = s.root.release()
		return nil, s.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	it := &pullIterator[T]{root: s.root}
	seq := func(yield func(T) bool) {
		if err := s.stage.run(ctx, yield); err != nil {
			it.err = s.root.operationError(op, err)
		}
	}
	it.next, it.stop = iter.Pull(iter.Seq[T](seq))
	return it, nil
}

type pullIterator[T any] struct {
	root  *lineage
	next  func() (T, bool)
	stop  func()
	err   error
	items int64
	done  bool
}

func (it *pullIterator[T]) Next() (T, bool) {
	if it.done {
		var zero T
		return zero, false
	}

	value, ok := it.next()
	if !ok {
		it.finish()
		return value, false
	}
	it.items++
	return value, true
}

func (it *pullIterator[T]) Err() error {
	return it.err
}

func (it *pullIterator[T]) Stop() {
	it.finish()
}

func (it *pullIterator[T]) finish() {
	if it.done {
		return
	}
	it.done = true
	it.stop()

	it.root.delivered("Iterator", it.items)
	if it.err != nil {
		it.root.failed("Iterator")
	}
	_ = it.root.release()
}

// Collector describes a mutable reduction: Supplier creates the accumulation,
// Accumulator folds one element into it and Finisher turns it into the result.
type Collector[T, A, R any] struct {
	Supplier    func() A
	Accumulator func(A, T) A
	Finisher    func(A) R
}

// Collect consumes s and reduces its elements with c. Every function of c
// must be set.
func Collect[T, A, R any](ctx context.Context, s Stream[T], c Collector[T, A, R]) (R, error) {
	argErr := cmp.Or(
		nilFunc("supplier", c.Supplier == nil),
		nilFunc("accumulator", c.Accumulator == nil),
		nilFunc("finisher", c.Finisher == nil),
	)

	var acc A
	started := false
	err := s.base().drive(ctx, "Collect", argErr, func(value T) bool {
		if !started {
			acc, started = c.Supplier(), true
		}
		acc = c.Accumulator(acc, value)
		return true
	})
	if err != nil {
		var zero R
		return zero, err
	}
	if !started {
		acc = c.Supplier()
	}
	return c.Finisher(acc), nil
}

// ToList collects elements into a slice in emission order.
func ToList[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supplier:    func() []T { return make([]T, 0) },
		Accumulator: func(acc []T, value T) []T { return append(acc, value) },
		Finisher:    func(acc []T) []T { return acc },
	}
}

// Joining concatenates elements, separated by sep.
func Joining(sep string) Collector[string, []string, string] {
	return Collector[string, []string, string]{
		Supplier:    func() []string { return nil },
		Accumulator: func(acc []string, value string) []string { return append(acc, value) },
		Finisher:    func(acc []string) string { return strings.Join(acc, sep) },
	}
}

// GroupingBy groups elements by key; each group keeps emission order.
func GroupingBy[T any, K comparable](key func(T) K) Collector[T, map[K][]T, map[K][]T] {
	return Collector[T, map[K][]T, map[K][]T]{
		Supplier: func() map[K][]T { return make(map[K][]T) },
		Accumulator: func(acc map[K][]T, value T) map[K][]T {
			k := key(value)
			acc[k] = append(acc[k], value)
			return acc
		},
		Finisher: func(acc map[K][]T) map[K][]T { return acc },
	}
}

// Counting counts elements.
func Counting[T any]() Collector[T, int64, int64] {
	return Collector[T, int64, int64]{
		Supplier:    func() int64 { return 0 },
		Accumulator: func(acc int64, _ T) int64 { return acc + 1 },
		Finisher:    func(acc int64) int64 { return acc },
	}
}
