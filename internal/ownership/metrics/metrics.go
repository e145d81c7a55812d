package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ownership module.
type Metrics struct {
	// Resolution outcomes by status
	Resolutions *prometheus.CounterVec

	// End-to-end resolution latency (search through count)
	ResolveLatency prometheus.Histogram

	// Nodes in completed trees
	TreeSize prometheus.Histogram

	// Registry controlling-parties fetch latency and failures
	FetchLatency  prometheus.Histogram
	FetchFailures prometheus.Counter

	// Circular references truncated during traversal
	CyclesDetected prometheus.Counter

	// Nodes created across all traversals
	NodesBuilt prometheus.Counter
}

// New creates a Metrics instance with all ownership module metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "psc_gateway_resolutions_total",
			Help: "Total ownership resolutions by outcome status",
		}, []string{"status"}), // status: "resolved", "not_found", "configuration_error"

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "psc_gateway_resolve_duration_seconds",
			Help:    "Duration of full ownership resolution including all registry calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		TreeSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "psc_gateway_tree_nodes",
			Help:    "Node count of completed ownership trees",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "psc_gateway_registry_fetch_duration_seconds",
			Help:    "Duration of controlling-parties registry fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		FetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "psc_gateway_registry_fetch_failures_total",
			Help: "Total controlling-parties fetches that failed",
		}),

		CyclesDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "psc_gateway_cycles_detected_total",
			Help: "Total circular ownership references truncated during traversal",
		}),

		NodesBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "psc_gateway_nodes_built_total",
			Help: "Total ownership nodes created across all traversals",
		}),
	}
}

// IncrementResolution records a resolution outcome.
func (m *Metrics) IncrementResolution(status string) {
	if m != nil {
		m.Resolutions.WithLabelValues(status).Inc()
	}
}

// ObserveResolveLatency records the total resolution duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// ObserveTreeSize records the node count of a completed tree.
func (m *Metrics) ObserveTreeSize(nodes int) {
	if m != nil {
		m.TreeSize.Observe(float64(nodes))
	}
}

// ObserveFetchLatency records the duration of one registry fetch.
func (m *Metrics) ObserveFetchLatency(d time.Duration) {
	if m != nil {
		m.FetchLatency.Observe(d.Seconds())
	}
}

// IncrementFetchFailures records a failed registry fetch.
func (m *Metrics) IncrementFetchFailures() {
	if m != nil {
		m.FetchFailures.Inc()
	}
}

// IncrementCycles records a truncated circular reference.
func (m *Metrics) IncrementCycles() {
	if m != nil {
		m.CyclesDetected.Inc()
	}
}

// AddNodesBuilt records nodes created in one expansion step.
func (m *Metrics) AddNodesBuilt(n int) {
	if m != nil && n > 0 {
		m.NodesBuilt.Add(float64(n))
	}
}
