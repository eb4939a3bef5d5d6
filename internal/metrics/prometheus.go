package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the transcription pipeline
type Metrics struct {
	// Job metrics
	JobsStarted   prometheus.Counter
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	JobDuration   prometheus.Histogram

	// Audio metrics
	NormalizationFallbacks prometheus.Counter
	ChunksCreated          prometheus.Counter
	ChunksSkipped          prometheus.Counter

	// Transcription metrics
	TranscriptionRequests prometheus.Counter
	TranscriptionFailures prometheus.Counter
	TranscriptionDuration prometheus.Histogram

	// Redaction metrics
	RedactionRequests  prometheus.Counter
	RedactionFallbacks prometheus.Counter
	RedactionChanges   prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		JobsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_jobs_started_total",
			Help: "Total number of pipeline runs started",
		}),
		JobsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_jobs_completed_total",
			Help: "Total number of pipeline runs completed successfully",
		}),
		JobsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_jobs_failed_total",
			Help: "Total number of pipeline runs that failed",
		}),
		JobDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_job_duration_seconds",
			Help:    "End to end duration of one pipeline run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),

		NormalizationFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_normalization_fallbacks_total",
			Help: "Total number of runs that used the synthetic WAV header fallback",
		}),
		ChunksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_chunks_created_total",
			Help: "Total number of audio chunks produced",
		}),
		ChunksSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_chunks_skipped_total",
			Help: "Total number of audio chunks skipped due to per-chunk errors",
		}),

		TranscriptionRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_transcription_requests_total",
			Help: "Total number of speech endpoint invocations",
		}),
		TranscriptionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_transcription_failures_total",
			Help: "Total number of failed speech endpoint invocations",
		}),
		TranscriptionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_transcription_duration_seconds",
			Help:    "Duration of one speech endpoint invocation",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),

		RedactionRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_redaction_requests_total",
			Help: "Total number of guardrail applications",
		}),
		RedactionFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_redaction_fallbacks_total",
			Help: "Total number of guardrail applications that fell back to the original text",
		}),
		RedactionChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scribe_redaction_changes_total",
			Help: "Total number of guardrail applications that changed the content",
		}),
	}
}

// Handler returns the HTTP handler exposing the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
