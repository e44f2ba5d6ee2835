package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/chunkbench/internal/dispatch"
)

const namespace = "chunkbench"

// Registry holds the benchmark collectors. It implements dispatch.Recorder.
type Registry struct {
	reg *prometheus.Registry

	runDuration    *prometheus.HistogramVec
	runErrors      *prometheus.CounterVec
	workersSpawned *prometheus.CounterVec
	workerFailures *prometheus.CounterVec
	chunks         *prometheus.GaugeVec
}

var _ dispatch.Recorder = (*Registry)(nil)

// NewRegistry creates a registry with the benchmark collectors and the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of one dispatch, from validation to combined result.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"workload", "mode"}),
		runErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      "Dispatches that returned an error.",
		}, []string{"workload", "mode"}),
		workersSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workers_spawned_total",
			Help:      "Worker goroutines or processes started.",
		}, []string{"mode"}),
		workerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_failures_total",
			Help:      "Workers that failed.",
		}, []string{"mode"}),
		chunks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks",
			Help:      "Chunk count of the most recent dispatch.",
		}, []string{"workload"}),
	}
	r.reg.MustRegister(
		r.runDuration, r.runErrors, r.workersSpawned, r.workerFailures, r.chunks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRun records one dispatch.
func (r *Registry) ObserveRun(workload string, mode dispatch.Mode, chunks int, elapsed time.Duration, err error) {
	r.chunks.WithLabelValues(workload).Set(float64(chunks))
	if err != nil {
		r.runErrors.WithLabelValues(workload, string(mode)).Inc()
		return
	}
	r.runDuration.WithLabelValues(workload, string(mode)).Observe(elapsed.Seconds())
}

// WorkerStarted counts one started worker.
func (r *Registry) WorkerStarted(mode dispatch.Mode) {
	r.workersSpawned.WithLabelValues(string(mode)).Inc()
}

// WorkerFailed counts one failed worker.
func (r *Registry) WorkerFailed(mode dispatch.Mode) {
	r.workerFailures.WithLabelValues(string(mode)).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes every collected metric to path in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
