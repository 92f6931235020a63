// Package prometheus renders authflow counters in Prometheus text exposition
// format.
//
// [NewExporter] accepts an [authflow.Engine] and exposes an [http.Handler]
// suitable for mounting at /metrics. Counter names are prefixed
// authflow_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
