package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var pipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pipeline_runs_total",
	Help: "Pipeline runs labelled by kind and final status",
}, []string{"kind", "status"})

var activeRuns = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "pipeline_active_runs",
	Help: "Number of pipeline runs in flight",
})

var stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "stage_latency_seconds",
	Help:    "Latency of each pipeline stage.",
	Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10, 30, 60},
}, []string{"stage"})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_run_duration_seconds",
	Help:    "Total time spent in one pipeline run.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"kind", "status"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementActiveRuns() {
	activeRuns.Inc()
}

func DecrementActiveRuns() {
	activeRuns.Dec()
}

func CaptureStageMetrics(stage string, timeElapsed time.Duration) {
	stageLatency.WithLabelValues(stage).Observe(timeElapsed.Seconds())
}

func CaptureRunMetrics(kind string, status string, timeElapsed time.Duration) {
	pipelineRunsTotal.WithLabelValues(kind, status).Inc()
	requestDuration.WithLabelValues(kind, status).Observe(timeElapsed.Seconds())
}
