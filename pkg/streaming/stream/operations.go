package stream

import (
	"context"
	"fmt"
	"slices"
)

// stage is one link of a pipeline. run pushes elements to yield until the
// stage is exhausted or yield returns false; a false return must stop all
// upstream work, which is how Limit short-circuits the source.
type stage[T any] interface {
	run(ctx context.Context, yield func(T) bool) error
	plan() []StageInfo
}

// sourceStage pulls elements from a Source.
type sourceStage[T any] struct {
	source Source[T]
	root   *lineage
}

func (s *sourceStage[T]) run(ctx context.Context, yield func(T) bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, hasMore, err := s.source.Next(ctx)
		if err != nil {
			return err
		}
		if !hasMore {
			return nil
		}

		s.root.sourceRead()
		if !yield(value) {
			return nil
		}
	}
}

func (s *sourceStage[T]) plan() []StageInfo {
	return []StageInfo{{Op: "source"}}
}

// filterStage filters elements based on a predicate.
type filterStage[T any] struct {
	upstream  stage[T]
	predicate func(T) bool
}

func (f *filterStage[T]) run(ctx context.Context, yield func(T) bool) error {
	return f.upstream.run(ctx, func(value T) bool {
		if !f.predicate(value) {
			return true
		}
		return yield(value)
	})
}

func (f *filterStage[T]) plan() []StageInfo {
	return append(f.upstream.plan(), StageInfo{Op: "filter"})
}

// mapStage transforms elements using a mapper function.
type mapStage[T, R any] struct {
	upstream stage[T]
	mapper   func(T) R
}

func (m *mapStage[T, R]) run(ctx context.Context, yield func(R) bool) error {
	return m.upstream.run(ctx, func(value T) bool {
		return yield(m.mapper(value))
	})
}

func (m *mapStage[T, R]) plan() []StageInfo {
	return append(m.upstream.plan(), StageInfo{Op: "map"})
}

// sortStage sorts all elements. It must drain its upstream before emitting the
// first element, so stages above it cannot be short-circuited by a limit below it.
type sortStage[T any] struct {
	upstream stage[T]
	compare  func(a, b T) int
	root     *lineage
}

func (s *sortStage[T]) run(ctx context.Context, yield func(T) bool) error {
	var elements []T
	err := s.upstream.run(ctx, func(value T) bool {
		elements = append(elements, value)
		return true
	})
	if err != nil {
		return err
	}

	slices.SortStableFunc(elements, s.compare)
	s.root.buffered(len(elements))

	for _, value := range elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !yield(value) {
			return nil
		}
	}
	return nil
}

func (s *sortStage[T]) plan() []StageInfo {
	return append(s.upstream.plan(), StageInfo{Op: "sorted", Barrier: true})
}

// skipStage skips the first n elements.
type skipStage[T any] struct {
	upstream stage[T]
	count    int64
}

func (s *skipStage[T]) run(ctx context.Context, yield func(T) bool) error {
	var skipped int64
	return s.upstream.run(ctx, func(value T) bool {
		if skipped < s.count {
			skipped++
			return true
		}
		return yield(value)
	})
}

func (s *skipStage[T]) plan() []StageInfo {
	return append(s.upstream.plan(), StageInfo{Op: fmt.Sprintf("skip(%d)", s.count)})
}

// limitStage limits the number of elements.
type limitStage[T any] struct {
	upstream stage[T]
	maxSize  int64
}

func (l *limitStage[T]) run(ctx context.Context, yield func(T) bool) error {
	if l.maxSize <= 0 {
		return nil
	}

	var count int64
	return l.upstream.run(ctx, func(value T) bool {
		count++
		if !yield(value) {
			return false
		}
		return count < l.maxSize
	})
}

func (l *limitStage[T]) plan() []StageInfo {
	return append(l.upstream.plan(), StageInfo{Op: fmt.Sprintf("limit(%d)", l.maxSize)})
}

// peekStage performs an action on each element without modifying the stream.
type peekStage[T any] struct {
	upstream stage[T]
	action   func(T)
}

func (p *peekStage[T]) run(ctx context.Context, yield func(T) bool) error {
	return p.upstream.run(ctx, func(value T) bool {
		p.action(value)
		return yield(value)
	})
}

func (p *peekStage[T]) plan() []StageInfo {
	return append(p.upstream.plan(), StageInfo{Op: "peek"})
}
