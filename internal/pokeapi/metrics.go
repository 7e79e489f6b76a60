package pokeapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metric for creature lookups. Cache hits get their own outcome so
// the cache's effect stays visible.
var lookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fetchkit_creature_lookups_total",
		Help: "Total creature lookups by outcome",
	},
	[]string{"outcome"},
)
