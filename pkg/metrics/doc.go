// Package metrics provides Prometheus instrumentation for menuflow streams.
//
// # Overview
//
// Streams built with metrics enabled report:
//   - terminal operations started, per operation and stream name
//   - items delivered to the terminal operation
//   - items pulled from the source, which makes short-circuiting visible
//   - failed terminal operations, including reuse of a consumed stream
//   - the number of elements held by the last sort barrier
//
// # Quick Start
//
//	reg := prometheus.NewRegistry()
//	s := stream.FromSliceWithConfig(dishes, stream.Config{
//		Name:    "menu",
//		Metrics: metrics.Config{Enabled: true, Registry: reg},
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Metric Names
//
//	menuflow_stream_operations_total{operation,stream_name}
//	menuflow_stream_items_processed_total{operation,stream_name}
//	menuflow_stream_source_reads_total{stream_name}
//	menuflow_stream_errors_total{operation,stream_name}
//	menuflow_stream_buffer_size{stream_name}
//
// Registries are cached per registerer, namespace and label set, so every
// stream built with the same configuration shares one Registry. Two
// configurations that differ only in const labels cannot share a registerer:
// New reports the conflict as an error and streams run without metrics.
package metrics
