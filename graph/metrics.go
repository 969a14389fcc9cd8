package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are process wide; with several graphs the gauges report the last
// one mutated.
var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_graph_ticks_total",
		Help: "Simulation steps completed",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ontograph_graph_tick_duration_seconds",
		Help:    "Duration of one simulation step",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16),
	})

	stepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_graph_step_errors_total",
		Help: "Simulation steps aborted by numeric instability",
	})

	distanceUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_graph_distance_updates_total",
		Help: "Recomputations of the distance to the selection",
	})

	selectionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontograph_graph_selection_changes_total",
		Help: "Selection transitions by kind",
	}, []string{"op"})

	nodesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ontograph_graph_nodes",
		Help: "Nodes in the graph",
	})

	edgesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ontograph_graph_edges",
		Help: "Edges in the graph",
	})
)
