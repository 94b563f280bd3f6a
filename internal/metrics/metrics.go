// Package metrics exposes Prometheus metrics for the HTTP surface and the
// backtest engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	signalsGenerated *prometheus.CounterVec
	tradesSimulated  *prometheus.CounterVec
}

// NewRegistry creates a metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),

		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantdesk_backtests_total",
				Help: "Total number of backtest runs",
			},
			[]string{"status"},
		),

		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quantdesk_backtest_duration_seconds",
				Help:    "Backtest run duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		signalsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantdesk_signals_generated_total",
				Help: "Total number of strategy signals generated",
			},
			[]string{"strategy"},
		),

		tradesSimulated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantdesk_trades_simulated_total",
				Help: "Total number of simulated trades",
			},
			[]string{"strategy"},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)
	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.signalsGenerated)
	reg.MustRegister(r.tradesSimulated)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordBacktest records a finished backtest run.
func (r *Registry) RecordBacktest(status string, duration time.Duration) {
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(duration.Seconds())
}

// RecordSignals counts signals produced by a strategy evaluation.
func (r *Registry) RecordSignals(strategy string, count int) {
	r.signalsGenerated.WithLabelValues(strategy).Add(float64(count))
}

// RecordTrades counts trades executed by a simulation.
func (r *Registry) RecordTrades(strategy string, count int) {
	r.tradesSimulated.WithLabelValues(strategy).Add(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
