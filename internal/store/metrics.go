package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	packsPurchased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boosterpacks_purchased_total",
			Help: "Total booster packs purchased",
		},
		[]string{"pack_id"},
	)
	creaturesAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "creatures_awarded_total",
			Help: "Total creatures awarded from booster packs",
		},
	)
	catalogCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(packsPurchased)
	prometheus.MustRegister(creaturesAwarded)
	prometheus.MustRegister(catalogCacheHits)
}
