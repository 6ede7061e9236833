package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	ValidationFailures *prometheus.CounterVec
	GateRejections     prometheus.Counter
	SnapshotWrites     prometheus.Counter
	SnapshotFallbacks  prometheus.Counter
	SelectionToggles   prometheus.Counter
}

// NewMetrics registers the engine collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enform",
			Name:      "validation_failures_total",
			Help:      "Field validation failures, labelled by field path.",
		}, []string{"path"}),
		GateRejections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "enform",
			Name:      "gate_rejections_total",
			Help:      "Forward navigation attempts rejected by the gate.",
		}),
		SnapshotWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "enform",
			Name:      "snapshot_writes_total",
			Help:      "Snapshot persist operations attempted.",
		}),
		SnapshotFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "enform",
			Name:      "snapshot_fallbacks_total",
			Help:      "Snapshot reads that fell back to an empty snapshot after a storage error.",
		}),
		SelectionToggles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "enform",
			Name:      "selection_toggles_total",
			Help:      "Plan selection toggles applied to the shadow store.",
		}),
	}
}

// Nop returns metrics bound to a throwaway registry, for callers that do
// not scrape.
func Nop() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
