package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the cleaning counters served on /metrics.
type Metrics struct {
	UploadsTotal     prometheus.Counter
	LoadFailures     prometheus.Counter
	RowsSeenTotal    prometheus.Counter
	RowsRemovedTotal prometheus.Counter
}

// NewMetrics registers the cleaning counters with the given registerer.
// Passing prometheus.DefaultRegisterer wires them to the default /metrics
// handler; tests pass their own registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gscclean_uploads_total",
			Help: "Number of report files received for cleaning.",
		}),
		LoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gscclean_load_failures_total",
			Help: "Number of uploads that could not be parsed into a table.",
		}),
		RowsSeenTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gscclean_rows_seen_total",
			Help: "Total data rows across all cleaned tables, before filtering.",
		}),
		RowsRemovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gscclean_rows_removed_total",
			Help: "Total rows removed by validity filtering.",
		}),
	}
}
