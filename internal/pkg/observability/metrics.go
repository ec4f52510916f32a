package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qcar_dispatch", Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qcar_dispatch", Name: "claims_total",
			Help: "Driver claim attempts by outcome",
		},
		[]string{"outcome"}, // won, lost, superseded, not_found, error
	)

	OffersPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qcar_dispatch", Name: "offers_published_total",
		Help: "Total number of order offers published to drivers",
	})

	OfferRoundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qcar_dispatch", Name: "offer_rounds_total",
		Help: "Total number of offer rounds opened",
	})

	FixesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qcar_dispatch", Name: "location_fixes_total",
			Help: "Location fixes by filter outcome",
		},
		[]string{"outcome"}, // published, suppressed, rejected_accuracy, rejected_malformed
	)

	SnapshotsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qcar_dispatch", Name: "snapshots_dropped_total",
		Help: "Order snapshots dropped for slow subscribers",
	})

	DriversOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "qcar_dispatch", Name: "drivers_online",
		Help: "Number of drivers currently in the available pool",
	})
)
