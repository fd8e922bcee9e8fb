package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Narration metrics
	activeNarrations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "narrator_active_narrations",
		Help: "Number of narration requests currently in flight",
	})

	narrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "narrator_narrations_total",
		Help: "Total number of narration requests processed",
	}, []string{"status"})

	narrationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "narrator_narration_duration_seconds",
		Help:    "Wall-clock duration of full narration requests in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	sentencesPerNarration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "narrator_sentences_per_narration",
		Help:    "Number of sentences synthesized per narration request",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	// TTS backend metrics
	ttsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "narrator_tts_requests_total",
		Help: "Total number of TTS backend requests",
	}, []string{"status"})

	ttsLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "narrator_tts_latency_seconds",
		Help:    "TTS backend request latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// Cache metrics
	cacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "narrator_cache_ops_total",
		Help: "Total number of cache lookups",
	}, []string{"result"}) // result: "hit", "miss" or "error"

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "narrator_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "narrator_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	// Audio metrics
	audioBytesOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narrator_audio_bytes_out_total",
		Help: "Total encoded audio bytes returned to clients",
	})
)

// Metrics tracks metrics for a single narration request
type Metrics struct {
	startTime time.Time
}

// NewNarrationMetrics creates a new metrics tracker for one narration request
func NewNarrationMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordNarrationStart records the start of a narration request
func (m *Metrics) RecordNarrationStart() {
	activeNarrations.Inc()
}

// RecordNarrationEnd records the end of a narration request
func (m *Metrics) RecordNarrationEnd(success bool) {
	activeNarrations.Dec()
	narrationDuration.Observe(time.Since(m.startTime).Seconds())

	status := "success"
	if !success {
		status = "error"
	}
	narrationsTotal.WithLabelValues(status).Inc()
}

// RecordSentenceCount records how many sentences a narration contained
func (m *Metrics) RecordSentenceCount(n int) {
	sentencesPerNarration.Observe(float64(n))
}

// RecordTTSRequest records one TTS backend round trip
func RecordTTSRequest(success bool, latency time.Duration) {
	ttsLatency.Observe(latency.Seconds())

	status := "success"
	if !success {
		status = "error"
	}
	ttsRequests.WithLabelValues(status).Inc()
}

// RecordCacheHit records a cache lookup that returned a value
func RecordCacheHit() {
	cacheOps.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a cache lookup that found nothing
func RecordCacheMiss() {
	cacheOps.WithLabelValues("miss").Inc()
}

// RecordCacheError records a cache lookup that failed
func RecordCacheError() {
	cacheOps.WithLabelValues("error").Inc()
}

// RecordError records an error
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordAudioBytesOut records the size of an encoded narration response
func RecordAudioBytesOut(bytes int64) {
	audioBytesOut.Add(float64(bytes))
}

// UpdateCircuitBreakerState updates the circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}
