package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skymap_poll_cycles_total",
		Help: "Poll cycles by outcome (success, failure, discarded)",
	}, []string{"result"})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skymap_poll_cycle_duration_seconds",
		Help:    "Wall time of a poll cycle from fetch to publish",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skymap_fetch_errors_total",
		Help: "Upstream fetch failures by resource (instances, load_balancers, tags)",
	}, []string{"resource"})

	topologyNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skymap_topology_nodes",
		Help: "Nodes in the last published topology by kind",
	}, []string{"kind"})

	shadowedBalancers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skymap_shadowed_load_balancers",
		Help: "Load balancers ignored in the last cycle because their role was already taken",
	})
)
