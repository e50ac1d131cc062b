// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and histograms for the wagering core. Registered on the default
// registry and served by the dedicated metrics server.
var (
	TicketsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betledger_tickets_placed_total",
		Help: "Number of tickets successfully placed.",
	})

	TicketsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betledger_tickets_settled_total",
		Help: "Number of tickets settled, by terminal outcome.",
	}, []string{"outcome"})

	PlacementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betledger_placements_rejected_total",
		Help: "Number of placements rejected, by reason.",
	}, []string{"reason"})

	PlacementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betledger_placement_duration_seconds",
		Help:    "Duration of the placement transaction, begin to commit.",
		Buckets: prometheus.DefBuckets,
	})
)
