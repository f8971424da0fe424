package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sachet_alerts"

// Metrics holds the Prometheus collectors for the ingestion pipeline.
type Metrics struct {
	FetchTotal        *prometheus.CounterVec // labels: outcome={success,transport_error,http_error,parse_error}
	CycleDuration     prometheus.Histogram
	BatchSize         prometheus.Histogram
	RecordsDropped    *prometheus.CounterVec // labels: reason={not_live,duplicate}
	SkippedTicks      prometheus.Counter
	SinkDeliveries    *prometheus.CounterVec // labels: sink, outcome={success,error}
	StreamSubscribers prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchTotal,
		m.CycleDuration,
		m.BatchSize,
		m.RecordsDropped,
		m.SkippedTicks,
		m.SinkDeliveries,
		m.StreamSubscribers,
	)
	return m
}

// NewMetricsForTesting returns unregistered metrics so tests can create as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetch_total",
			Help:      "Feed fetches by outcome.",
		}, []string{"outcome"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a fetch-parse-filter-deliver cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Records in each delivered batch.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Parsed records removed before delivery, by reason.",
		}, []string{"reason"}),
		SkippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_ticks_total",
			Help:      "Poll ticks skipped because the previous cycle was still running.",
		}),
		SinkDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_deliveries_total",
			Help:      "Batch deliveries per sink by outcome.",
		}, []string{"sink", "outcome"}),
		StreamSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_subscribers",
			Help:      "Connected server-sent event subscribers.",
		}),
	}
}
