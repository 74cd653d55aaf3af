package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus collectors for the analytics pipeline.
type Registry struct {
	registry *prometheus.Registry

	PipelineRunsTotal    *prometheus.CounterVec
	StageDuration        *prometheus.HistogramVec
	SnapshotNodesTotal   prometheus.Gauge
	SnapshotEdgesTotal   prometheus.Gauge
	SnapshotTotalWeight  prometheus.Gauge
	CommunitiesDetected  *prometheus.GaugeVec
	AnomaliesFlagged     prometheus.Gauge
	CacheWritesTotal     *prometheus.CounterVec
}

// NewRegistry creates a registry with all pipeline collectors registered on a
// fresh Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.PipelineRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphpulse_pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphpulse_stage_duration_seconds",
			Help:    "Analytic stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.SnapshotNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphpulse_snapshot_nodes_total",
			Help: "Node count of the most recent snapshot",
		},
	)

	r.SnapshotEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphpulse_snapshot_edges_total",
			Help: "Edge count of the most recent snapshot",
		},
	)

	r.SnapshotTotalWeight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphpulse_snapshot_total_weight",
			Help: "Summed edge weight of the most recent snapshot",
		},
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphpulse_communities_detected",
			Help: "Community count per detection algorithm for the most recent run",
		},
		[]string{"algorithm"},
	)

	r.AnomaliesFlagged = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphpulse_anomalies_flagged",
			Help: "Anomaly count of the most recent run",
		},
	)

	r.CacheWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphpulse_cache_writes_total",
			Help: "Snapshot cache writes by status",
		},
		[]string{"status"},
	)

	return r
}

// Prometheus exposes the underlying registry for scraping handlers.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// ObserveStage records one analytic stage duration.
func (r *Registry) ObserveStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records a completed or failed pipeline run.
func (r *Registry) RecordRun(status string) {
	r.PipelineRunsTotal.WithLabelValues(status).Inc()
}

// UpdateSnapshot records the shape of the most recent snapshot.
func (r *Registry) UpdateSnapshot(nodes, edges int, totalWeight float64) {
	r.SnapshotNodesTotal.Set(float64(nodes))
	r.SnapshotEdgesTotal.Set(float64(edges))
	r.SnapshotTotalWeight.Set(totalWeight)
}

// RecordCacheWrite records a snapshot cache write outcome.
func (r *Registry) RecordCacheWrite(status string) {
	r.CacheWritesTotal.WithLabelValues(status).Inc()
}
