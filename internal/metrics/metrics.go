// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the ORM store.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data (histograms).
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - Concrete metric systems (Prometheus Pushgateway, DogStatsD) live in
//     subpackages, the same way storage backends live under internal/storage.
//
// SetBackend is meant to be called once at start-up, before any store
// operation runs.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so we can plug in Prometheus, Datadog, etc.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordOp measures latency and success/failure of one store operation
// ("create_table", "save", "get", "all", "get_by_field", "get_by_exact_field",
// "update", "delete") against table.
//
// Not-found outcomes are reported with status "not_found" rather than
// "failure", since they are an expected answer and not a store fault.
func RecordOp(table, op string, err error, d time.Duration, notFound bool) {
	status := "success"
	switch {
	case notFound:
		status = "not_found"
	case err != nil:
		status = "failure"
	}

	lbls := Labels{
		"table":  table,
		"op":     op,
		"status": status,
	}

	backend.IncCounter("orm_ops_total", 1, lbls)
	backend.ObserveHistogram("orm_op_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given table and kind.
//
// Kinds used by the store:
//   - "inserted"
//   - "hydrated"
//   - "updated"
//   - "deleted"
func RecordRows(table, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("orm_rows_total", float64(delta), Labels{
		"table": table,
		"kind":  kind,
	})
}
