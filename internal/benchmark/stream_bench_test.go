package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/vnykmshr/menuflow/pkg/menu"
	"github.com/vnykmshr/menuflow/pkg/streaming/stream"
)

// largeMenu repeats the sample dishes with unique names.
func largeMenu(b *testing.B, size int) *menu.Menu {
	b.Helper()
	sample := menu.Sample().Records()
	dishes := make([]menu.Dish, 0, size)
	for i := 0; i < size; i++ {
		d := sample[i%len(sample)]
		d.Name = fmt.Sprintf("%s-%d", d.Name, i)
		dishes = append(dishes, d)
	}
	m, err := menu.New(dishes...)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func ints(size int) []int {
	data := make([]int, size)
	for i := range data {
		data[i] = i
	}
	return data
}

// BenchmarkFromSlice measures stream creation from slice.
func BenchmarkFromSlice(b *testing.B) {
	for _, size := range []int{10, 100, 1000, 10000} {
		data := ints(size)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := stream.FromSlice(data)
				_ = s.Close()
			}
		})
	}
}

// BenchmarkLowCaloricDishNames compares the loop and pipeline forms of the
// same query.
func BenchmarkLowCaloricDishNames(b *testing.B) {
	ctx := context.Background()

	for _, size := range []int{100, 1000, 10000} {
		m := largeMenu(b, size)
		records := m.Records()

		b.Run("Imperative/"+sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = menu.LowCaloricDishNamesImperative(records, 400)
			}
		})

		b.Run("Stream/"+sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = menu.LowCaloricDishNames(ctx, m, 400)
			}
		})
	}
}

// BenchmarkLimit contrasts a streaming limit, which stops reading early, with
// a limit behind a sort barrier, which reads everything.
func BenchmarkLimit(b *testing.B) {
	ctx := context.Background()
	m := largeMenu(b, 10000)

	b.Run("SourceOrder", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = menu.HighCaloricDishes(ctx, m, 300, 3)
		}
	})

	b.Run("Sorted", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = menu.TopCaloricDishes(ctx, m, 300, 3)
		}
	})
}

// BenchmarkChainedOperations measures chained filter+map performance.
func BenchmarkChainedOperations(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		data := ints(size)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := stream.FromSlice(data).
					Filter(func(n int) bool { return n%2 == 0 }).
					Map(func(n int) int { return n * 2 }).
					Filter(func(n int) bool { return n > 100 })
				_, _ = s.ToSlice(context.Background())
			}
		})
	}
}

// BenchmarkSorted measures the sort barrier.
func BenchmarkSorted(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		data := ints(size)

		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := stream.FromSlice(data).Sorted(stream.Reversed(stream.NaturalOrder[int]()))
				_, _ = s.ToSlice(context.Background())
			}
		})
	}
}

// BenchmarkForEach measures forEach terminal operation.
func BenchmarkForEach(b *testing.B) {
	data := ints(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := stream.FromSlice(data)
		_ = s.ForEach(context.Background(), func(_ int) {})
	}
}

// BenchmarkIterator measures pull iteration, which runs the pipeline on a
// separate coroutine.
func BenchmarkIterator(b *testing.B) {
	data := ints(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it, err := stream.FromSlice(data).Iterator(context.Background())
		if err != nil {
			b.Fatal(err)
		}
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
		it.Stop()
	}
}

// BenchmarkReduce measures reduce terminal operation.
func BenchmarkReduce(b *testing.B) {
	data := ints(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := stream.FromSlice(data)
		_, _ = s.Reduce(context.Background(), 0, func(acc, n int) int { return acc + n })
	}
}

// BenchmarkSkipLimit measures skip and limit operations.
func BenchmarkSkipLimit(b *testing.B) {
	data := ints(10000)

	b.Run("Skip1000", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s := stream.FromSlice(data).Skip(1000)
			_, _ = s.ToSlice(context.Background())
		}
	})

	b.Run("Limit100", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s := stream.FromSlice(data).Limit(100)
			_, _ = s.ToSlice(context.Background())
		}
	})

	b.Run("Skip1000_Limit100", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s := stream.FromSlice(data).Skip(1000).Limit(100)
			_, _ = s.ToSlice(context.Background())
		}
	})
}

// sizeLabel returns a readable label for benchmark sizes.
func sizeLabel(size int) string {
	switch {
	case size >= 10000:
		return "10k"
	case size >= 1000:
		return "1k"
	case size >= 100:
		return "100"
	default:
		return "10"
	}
}
