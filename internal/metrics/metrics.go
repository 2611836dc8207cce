package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sailcast_provider_calls_total",
			Help: "Total Open-Meteo API calls",
		},
		[]string{"status"},
	)

	ProviderLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sailcast_provider_latency_seconds",
			Help:    "Open-Meteo API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sailcast_refreshes_total",
			Help: "Forecast refresh cycles by data source",
		},
		[]string{"source"},
	)

	DaysCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sailcast_forecast_days_cached",
			Help: "Forecast days currently held in the cache",
		},
	)
)
