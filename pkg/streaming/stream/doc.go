/*
Package stream provides lazy, single-use pipelines over sequences of elements.

The API follows the shape of Java 8 Streams: a pipeline is built by chaining
intermediate operations on a source and is evaluated by exactly one terminal
operation.

Core Concepts:

A Stream is a description, not a result. Streams are:
  - Lazy: building a pipeline reads nothing from the source; elements are pulled
    only when a terminal operation runs, and only as many as it needs
  - Immutable: intermediate operations return new streams and never modify the receiver
  - Single-use: a stream and everything derived from it share one lineage, and the
    first terminal operation consumes the whole lineage
  - Context-aware: terminal operations accept a context and stop when it is done

Basic Usage:

	names, err := stream.MapTo(
		stream.FromSlice(dishes).
			Filter(func(d Dish) bool { return d.Calories < 400 }).
			Sorted(stream.Comparing(func(d Dish) int { return d.Calories })),
		func(d Dish) string { return d.Name },
	).ToSlice(ctx)

Intermediate Operations:

	s.Filter(predicate)                  // keep matching elements, order preserved
	s.Map(mapper)                        // same element type
	stream.MapTo(s, mapper)              // new element type
	s.Sorted(compare)                    // stable sort, barrier
	s.Sorted(stream.Reversed(compare))   // descending, ties keep source order
	s.Skip(n)
	s.Limit(n)                           // stops pulling after n elements
	s.Peek(action)

Terminal Operations:

	s.ToSlice(ctx)
	s.ForEach(ctx, action)
	s.Count(ctx)
	s.Reduce(ctx, identity, accumulator)
	s.AnyMatch(ctx, p) / s.AllMatch(ctx, p) / s.NoneMatch(ctx, p)
	s.FindFirst(ctx)
	s.Min(ctx, compare) / s.Max(ctx, compare)
	s.Iterator(ctx)                      // external iteration, must be stopped
	stream.Collect(ctx, s, stream.GroupingBy(key))

Evaluation:

Evaluation is a push walk driven by the terminal operation. Filter, Map, Peek,
Skip and Limit run in streaming mode: one element travels through the whole
chain before the next one is read, so

	s.Filter(p).Map(f).Limit(3)

calls p and f only until three elements came out, then stops reading the source.

Sorted is a barrier. It switches the walk to buffered mode: every element
upstream of it is produced (and every upstream filter and map is applied)
before the first sorted element is emitted. Stages after the barrier stream
again, so in

	s.Filter(p).Sorted(c).Limit(3)

p sees every source element but only three sorted elements reach the terminal
operation. Describe reports the mode of each stage:

	for _, info := range s.Describe() {
		fmt.Println(info) // source[buffered] filter[buffered] sorted[buffered] limit(3)[streaming]
	}

Single Use:

	s := stream.Of("Java8", "In", "Action")
	_ = s.ForEach(ctx, print)   // prints three lines
	err := s.ForEach(ctx, print) // prints nothing
	errors.Is(err, stream.ErrStreamConsumed) // true

The second call fails with *errors.ReuseError before visiting any element. To
repeat a computation, build a new stream from the source data.

Argument Errors:

Invalid arguments to intermediate operations (a negative limit, a nil
predicate) are recorded on the pipeline and returned as *errors.ValidationError
by the terminal operation, after the lineage has been consumed.

Observability:

Config carries a zap logger and a metrics configuration:

	s := stream.FromSliceWithConfig(dishes, stream.Config{
		Name:    "menu",
		Logger:  logger,
		Metrics: metrics.Config{Enabled: true, Registry: reg},
	})

Thread Safety:

Streams are not safe for concurrent use. A terminal action that hands elements
to other goroutines must provide its own synchronization.
*/
package stream
