package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AdvisorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stocksage",
			Subsystem: "advisor",
			Name:      "latency_seconds",
			Help:      "Latency of advisor endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	AdvisorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stocksage",
			Subsystem: "advisor",
			Name:      "errors_total",
			Help:      "Errors by advisor endpoint",
		},
		[]string{"endpoint"},
	)

	WatchAlerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stocksage",
			Subsystem: "advisor",
			Name:      "watch_alerts_total",
			Help:      "Triggered watchlist alerts by symbol",
		},
		[]string{"symbol"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(AdvisorLatency, AdvisorErrors, WatchAlerts)
	})
}
