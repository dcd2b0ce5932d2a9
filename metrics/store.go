package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Labels to use for store operations.
	operationLabels = []string{"operation", "status", "cause"}

	// Labels to use for store latencies.
	operationLatencyLabels = []string{"operation"}
)

// StoreMetrics count and time the operations issued against the
// key-value store
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Latencies  *prometheus.SummaryVec
}

// NewStoreMetrics creates and registers the metrics for the store
// used by serviceName
func NewStoreMetrics(registerer prometheus.Registerer, serviceName string) (*StoreMetrics, error) {
	metrics := &StoreMetrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_store_operations", serviceName),
				Help: "How many store operations are made, partitioned by operation, status and cause.",
			},
			operationLabels,
		),
		Latencies: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: fmt.Sprintf("%s_store_latencies", serviceName),
				Help: "How long store operations take, partitioned by operation.",
			},
			operationLatencyLabels,
		),
	}

	if err := register(registerer, metrics.Operations, metrics.Latencies); err != nil {
		return nil, err
	}

	return metrics, nil
}

// OperationCounter returns the counter for the store operation.
// Provided labels should be operation, status, and cause.
func (m *StoreMetrics) OperationCounter(labels ...string) prometheus.Counter {
	return m.Operations.WithLabelValues(padLabels(labels, len(operationLabels))...)
}

// OperationTimer creates a new latency timer for the provided store operation.
func (m *StoreMetrics) OperationTimer(labels ...string) *prometheus.Timer {
	return prometheus.NewTimer(m.Latencies.WithLabelValues(
		padLabels(labels, len(operationLatencyLabels))...))
}
