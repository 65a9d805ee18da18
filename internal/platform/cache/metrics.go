package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes recorded in lookupsTotal.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

var lookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "contacts_cache_lookups_total",
		Help: "Contact cache lookups by query and result",
	},
	[]string{"query", "result"},
)

var invalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "contacts_cache_invalidations_total",
		Help: "Number of cache generation bumps after committed mutations",
	},
)
