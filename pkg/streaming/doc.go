/*
Package streaming groups the lazy pipeline packages of menuflow.

  - stream: single-use pipelines with filter, map, sort and limit stages and
    the terminal operations that evaluate them

Basic usage:

	n, err := stream.Of(800, 700, 400).
		Filter(func(c int) bool { return c > 500 }).
		Count(ctx)
*/
package streaming
