package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "digest"

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Metrics holds every collector the service exports
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	upstreamCalls      *prometheus.CounterVec
	upstreamDuration   *prometheus.HistogramVec
	upstreamRetries    *prometheus.CounterVec
	extractions        *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	artifactsStored    *prometheus.CounterVec
	artifactsSwept     prometheus.Counter
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.05, .1, .5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"method", "route"}),
		upstreamCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Calls to hosted transcription and summarization services.",
		}, []string{"service", "outcome"}),
		upstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Latency of hosted service calls, retries included.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"service"}),
		upstreamRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Retried hosted service calls.",
		}, []string{"service"}),
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_extractions_total",
			Help:      "ffmpeg audio extractions by outcome.",
		}, []string{"outcome"}),
		extractionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audio_extraction_duration_seconds",
			Help:      "Time spent probing and encoding audio.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		artifactsStored: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_stored_total",
			Help:      "Files written to temporary storage by kind.",
		}, []string{"kind"}),
		artifactsSwept: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_swept_total",
			Help:      "Expired artifacts removed by the janitor.",
		}),
	}
}

// Outcome classifies err for the outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveUpstream(service string, start time.Time, outcome string) {
	m.upstreamCalls.WithLabelValues(service, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordRetry(service string) {
	m.upstreamRetries.WithLabelValues(service).Inc()
}

func (m *Metrics) ObserveExtraction(start time.Time, err error) {
	m.extractions.WithLabelValues(Outcome(err)).Inc()
	m.extractionDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordStored(kind string) {
	m.artifactsStored.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordSwept(n int) {
	m.artifactsSwept.Add(float64(n))
}
