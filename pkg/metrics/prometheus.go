package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches   *prometheus.CounterVec
	errors    *prometheus.CounterVec
	lastPrice *prometheus.GaugeVec
	marketCap *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kabucard_snapshot_fetches_total",
				Help: "Snapshot fetches by outcome",
			},
			[]string{"symbol", "outcome"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kabucard_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kabucard_last_price",
				Help: "Last quoted price for a symbol",
			},
			[]string{"symbol"},
		),
		marketCap: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kabucard_market_cap",
				Help: "Last reported market capitalization for a symbol",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kabucard_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch counts one snapshot fetch with its outcome (ok, not_found, error, limited).
func (r *Recorder) RecordFetch(symbol, outcome string) {
	r.fetches.WithLabelValues(symbol, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordMarketCap records the last market capitalization for a symbol.
func (r *Recorder) RecordMarketCap(symbol string, value float64) {
	r.marketCap.WithLabelValues(symbol).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
