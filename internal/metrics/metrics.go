// Package metrics exposes the engine's Prometheus instrumentation: a
// gauge for worker-pool occupancy and counters for comparisons
// completed, broken out by outcome, so an embedding host can scrape
// them alongside its own registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PoolActiveTasks holds an internal/pool.Pool's active job count.
	// Every Pool, including ad-hoc ones, writes it on each enqueue and
	// dequeue, so it reflects whichever pool changed last.
	PoolActiveTasks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "byteq",
		Subsystem: "pool",
		Name:      "active_tasks",
		Help:      "Number of comparison jobs currently running in the worker pool.",
	})

	// PoolQueueLength holds an internal/pool.Pool's pending job count,
	// written the same way as PoolActiveTasks.
	PoolQueueLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "byteq",
		Subsystem: "pool",
		Name:      "queue_length",
		Help:      "Number of comparison jobs waiting in the worker pool queue.",
	})

	// ComparisonsTotal counts completed comparisons by kind and outcome.
	ComparisonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "byteq",
		Name:      "comparisons_total",
		Help:      "Completed comparisons, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})
)

// MustRegister registers every collector above against reg. Call once at
// process startup; registering the same collector twice panics, which is
// prometheus's own contract for a duplicate registration bug.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(PoolActiveTasks, PoolQueueLength, ComparisonsTotal)
}
