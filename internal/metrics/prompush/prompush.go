// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the store labels (table, op, status, kind) onto Prometheus labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead of
//     exposing an HTTP scrape endpoint.
//
// All Prometheus-specific dependencies stay in this package so the rest of
// the project depends only on metrics.Backend.
package prompush

import (
	"fmt"

	"shelf/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	opCounter  *prometheus.CounterVec // orm_ops_total
	opDuration *prometheus.SummaryVec // orm_op_duration_seconds (summary)
	rowCounter *prometheus.CounterVec // orm_rows_total
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name.
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "shelf"
	}

	reg := prometheus.NewRegistry()

	opCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orm_ops_total",
			Help: "Total number of store operations, partitioned by table, op, and status.",
		},
		[]string{"table", "op", "status"},
	)
	opDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "orm_op_duration_seconds",
			Help:       "Duration of store operations in seconds, partitioned by table, op, and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"table", "op", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orm_rows_total",
			Help: "Row-level counts per table and kind (inserted, hydrated, updated, deleted).",
		},
		[]string{"table", "kind"},
	)

	if err := reg.Register(opCounter); err != nil {
		return nil, fmt.Errorf("prompush: register op counter: %w", err)
	}
	if err := reg.Register(opDuration); err != nil {
		return nil, fmt.Errorf("prompush: register op summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}

	return &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        reg,
		opCounter:  opCounter,
		opDuration: opDuration,
		rowCounter: rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "orm_ops_total":
		if b.opCounter == nil {
			return
		}
		b.opCounter.WithLabelValues(labels["table"], labels["op"], labels["status"]).Add(delta)

	case "orm_rows_total":
		if b.rowCounter == nil {
			return
		}
		b.rowCounter.WithLabelValues(labels["table"], labels["kind"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "orm_op_duration_seconds" || b.opDuration == nil {
		return
	}
	b.opDuration.WithLabelValues(labels["table"], labels["op"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
