package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal  *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
	accuracy    *prometheus.GaugeVec
	decisions   *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_fetch_total",
				Help: "Price series fetches by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_last_price",
				Help: "Last fetched close for a ticker",
			},
			[]string{"ticker"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockcast_operation_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		accuracy: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_model_accuracy_percent",
				Help: "In-sample accuracy of the most recent fit per model",
			},
			[]string{"model"},
		),
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_decisions_total",
				Help: "Decisions emitted by action",
			},
			[]string{"action"},
		),
	}
}

// RecordFetch records a fetch outcome (ok, not_found, empty, error).
func (r *Recorder) RecordFetch(source, outcome string) {
	r.fetchTotal.WithLabelValues(source, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordAccuracy(model string, accuracy float64) {
	r.accuracy.WithLabelValues(model).Set(accuracy)
}

func (r *Recorder) RecordDecision(action string) {
	r.decisions.WithLabelValues(action).Inc()
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordFetch(string, string)      {}
func (Nop) RecordError(string)              {}
func (Nop) RecordLastPrice(string, float64) {}
func (Nop) RecordLatency(string, float64)   {}
func (Nop) RecordAccuracy(string, float64)  {}
func (Nop) RecordDecision(string)           {}
