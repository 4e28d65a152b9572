// Package metrics provides Prometheus metrics for popdash.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RenderTotal counts plot renders by output slot and outcome.
	RenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "popdash",
			Name:      "render_total",
			Help:      "Total number of plot renders",
		},
		[]string{"slot", "status"},
	)

	// RenderDuration measures how long building and encoding a plot takes.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "popdash",
			Name:      "render_duration_seconds",
			Help:      "Duration of plot renders in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"slot"},
	)

	// DatasetRows records the size of each dataset loaded at startup.
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "popdash",
			Name:      "dataset_rows",
			Help:      "Number of rows loaded per dataset",
		},
		[]string{"dataset"},
	)
)
