package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_market_cache_hits_total",
		Help: "Total number of market cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_market_cache_misses_total",
		Help: "Total number of market cache misses",
	})

	CacheSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_market_cache_sets_total",
		Help: "Total number of market cache sets",
	})

	CacheDeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_market_cache_deletes_total",
		Help: "Total number of market cache deletes",
	})
)
