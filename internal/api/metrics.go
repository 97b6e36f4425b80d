package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ratingsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_ratings_submitted_total",
			Help: "Total number of rating submissions (creates and updates)",
		},
	)

	compatChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_compat_checks_total",
			Help: "Total number of compatibility checks by outcome label",
		},
		[]string{"label"},
	)

	compatNormalizedDifference = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_compat_normalized_difference",
			Help:    "Distribution of compatibility normalized differences",
			Buckets: []float64{0.02, 0.05, 0.10, 0.20, 0.35, 0.40, 0.60, 0.80, 1.0},
		},
	)
)
