/*
Package menuflow provides lazy, single-use stream pipelines and a small dish
menu that contrasts collection loops with declarative queries.

Streams (pkg/streaming/stream):
  - Filter, Map, MapTo, Sorted, Skip, Limit, Peek
  - ToSlice, ForEach, Count, Reduce, matchers, FindFirst, Min, Max, Iterator, Collect
  - one terminal operation per lineage; a second one fails with a ReuseError

Menu (pkg/menu):
  - Dish records and the read-only Menu store
  - queries written both as loops and as pipelines

Supporting packages:
  - pkg/metrics: Prometheus instrumentation for streams
  - pkg/common/errors: sentinel and typed errors
  - pkg/common/validation: argument validation

Example usage:

	import (
		"github.com/vnykmshr/menuflow/pkg/menu"
		"github.com/vnykmshr/menuflow/pkg/streaming/stream"
	)

	names, err := stream.MapTo(
		menu.Sample().Stream().
			Filter(func(d menu.Dish) bool { return d.Calories < 400 }).
			Sorted(menu.ByCalories),
		menu.Name,
	).ToSlice(ctx) // [season fruit rice]
*/
package menuflow
