package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLabels        = []string{"endpoint", "status", "cause"}
	requestLatencyLabels = []string{"endpoint"}
)

// ServiceMetrics are collected for every route served over HTTP
type ServiceMetrics struct {
	// Requests is partitioned by endpoint, status code and the
	// bridge error code that caused a failure, if any
	Requests *prometheus.CounterVec

	RequestLatencies *prometheus.SummaryVec
}

// NewServiceMetrics registers the metrics of the HTTP service named
// serviceName. Registering the same name twice on a registerer fails
func NewServiceMetrics(registerer prometheus.Registerer, serviceName string) (*ServiceMetrics, error) {
	m := &ServiceMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: serviceName + "_requests",
			Help: "Requests served, by endpoint, status code and error code.",
		}, requestLabels),
		RequestLatencies: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       serviceName + "_request_durations",
			Help:       "Time taken to serve a request, by endpoint.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, requestLatencyLabels),
	}

	if err := register(registerer, m.Requests, m.RequestLatencies); err != nil {
		return nil, err
	}
	return m, nil
}

// RequestCounter takes the endpoint, status and cause labels. Missing
// labels are left empty
func (m *ServiceMetrics) RequestCounter(labels ...string) prometheus.Counter {
	return m.Requests.WithLabelValues(padLabels(labels, len(requestLabels))...)
}

// RequestTimer starts timing a request to the endpoint in labels
func (m *ServiceMetrics) RequestTimer(labels ...string) *prometheus.Timer {
	return prometheus.NewTimer(m.RequestLatencies.WithLabelValues(
		padLabels(labels, len(requestLatencyLabels))...))
}

func register(registerer prometheus.Registerer, collectors ...prometheus.Collector) error {
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// padLabels truncates or pads labels with empty values so that it has
// exactly n values
func padLabels(labels []string, n int) []string {
	if len(labels) > n {
		return labels[:n]
	}

	out := make([]string, n)
	copy(out, labels)
	return out
}
