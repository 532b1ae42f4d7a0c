package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	comparisonsTotal   *prometheus.CounterVec
	comparisonDuration *prometheus.HistogramVec
	matchScore         *prometheus.HistogramVec
	comparedSentences  *prometheus.HistogramVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doccmp",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doccmp",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "doccmp",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	comparisonsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doccmp",
			Subsystem: "compare",
			Name:      "comparisons_total",
			Help:      "Total completed comparisons by verdict.",
		},
		[]string{"service", "verdict"},
	)
	comparisonDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doccmp",
			Subsystem: "compare",
			Name:      "duration_seconds",
			Help:      "Comparison pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	matchScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doccmp",
			Subsystem: "compare",
			Name:      "match_score",
			Help:      "Distribution of comparison match scores.",
			Buckets:   []float64{0, 0.1, 0.25, 0.5, 0.75, 0.85, 0.9, 0.95, 0.98, 1},
		},
		[]string{"service"},
	)
	comparedSentences := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "doccmp",
			Subsystem: "compare",
			Name:      "sentences",
			Help:      "Distribution of total sentences per comparison.",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		comparisonsTotal,
		comparisonDuration,
		matchScore,
		comparedSentences,
	)

	return &ServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		comparisonsTotal:   comparisonsTotal,
		comparisonDuration: comparisonDuration,
		matchScore:         matchScore,
		comparedSentences:  comparedSentences,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *ServerMetrics) RecordComparison(service, verdict string, matchScore float64, sentences int, duration time.Duration) {
	if verdict == "" {
		verdict = "unknown"
	}
	m.comparisonsTotal.WithLabelValues(service, verdict).Inc()
	m.comparisonDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.matchScore.WithLabelValues(service).Observe(matchScore)
	m.comparedSentences.WithLabelValues(service).Observe(float64(sentences))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
