// Package prometheus exposes admingate counters as a Prometheus collector.
//
// [NewCollector] accepts an [admingate.Engine] and implements
// [prometheus.Collector] over its counter snapshot; [Handler] mounts it on
// a private registry so nothing leaks into the global one. Counter names
// are prefixed admingate_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry — callers mount
//     the Handler or register the Collector themselves.
//   - Mutate engine state.
package prometheus
