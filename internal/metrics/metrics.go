package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Lookups            *prometheus.CounterVec
	RequestSeconds     *prometheus.HistogramVec
	Comparisons        *prometheus.CounterVec
	AddressesProcessed prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocmp_provider_lookups_total",
			Help: "Total number of geocoding lookups by provider and outcome.",
		}, []string{"provider", "status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocmp_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		Comparisons: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocmp_comparisons_total",
			Help: "Total number of provider comparisons against the reference, by verdict.",
		}, []string{"provider", "result"}),
		AddressesProcessed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocmp_addresses_processed_total",
			Help: "Total number of input addresses evaluated.",
		}),
	}
}
