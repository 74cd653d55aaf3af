// Package pipeline chains snapshot assembly and the analytic stages into one
// run: assemble, optionally persist, then Louvain, label propagation,
// hierarchy, centrality, anomalies and trends. A run is fail-fast: the first
// stage error aborts the whole pipeline with no partial outcome.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/graphpulse/graphpulse/pkg/algorithms"
	"github.com/graphpulse/graphpulse/pkg/config"
	"github.com/graphpulse/graphpulse/pkg/graph"
	"github.com/graphpulse/graphpulse/pkg/logging"
	"github.com/graphpulse/graphpulse/pkg/metrics"
)

// SnapshotStore is the cache contract. Implementations persist an assembled
// snapshot under a key; absence of a store simply skips persistence.
type SnapshotStore interface {
	Store(ctx context.Context, key string, snapshot *graph.Snapshot) error
}

// Outcome bundles everything one pipeline run produced.
type Outcome struct {
	RunID            string                             `json:"runId"`
	Snapshot         *graph.Snapshot                    `json:"snapshot"`
	Louvain          *algorithms.LouvainResult          `json:"louvain"`
	LabelPropagation *algorithms.LabelPropagationResult `json:"labelPropagation"`
	Hierarchy        *algorithms.HierarchicalResult     `json:"hierarchy"`
	Centrality       *algorithms.CentralityReport       `json:"centrality"`
	Anomalies        []algorithms.Anomaly               `json:"anomalies"`
	Trends           []algorithms.CommunityTrendSummary `json:"trends"`
}

// RunOptions adjusts a single run.
type RunOptions struct {
	// CacheKey keys the persisted snapshot; defaults to the run id.
	CacheKey string
	// EvaluationTime overrides the assembly evaluation time (default: now).
	// Trend evaluation always uses the snapshot's generation time regardless.
	EvaluationTime time.Time
	// PersistSnapshot writes the snapshot to the store, when one is set.
	PersistSnapshot bool
}

// Service orchestrates the analytics pipeline. Runs share no mutable state,
// so concurrent Run calls with independent inputs are safe.
type Service struct {
	cfg     config.Config
	cache   SnapshotStore
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Service.
type Option func(*Service)

// WithConfig replaces the default tuning configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithCache sets the snapshot store used when persistence is requested.
func WithCache(store SnapshotStore) Option {
	return func(s *Service) { s.cache = store }
}

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics registry.
func WithMetrics(registry *metrics.Registry) Option {
	return func(s *Service) { s.metrics = registry }
}

// NewService creates a pipeline service with defaults: default tuning, no
// cache, nop logger, no metrics.
func NewService(opts ...Option) *Service {
	s := &Service{
		cfg:    config.Default(),
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stage runs one analytic stage, logging and observing its duration.
func (s *Service) stage(logger logging.Logger, name string, fn func()) {
	start := time.Now()
	fn()
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveStage(name, elapsed)
	}
	logger.Debug("stage complete", logging.Stage(name), logging.Latency(elapsed))
}

// Run executes the full pipeline over one input slice.
func (s *Service) Run(ctx context.Context, input graph.AssemblyInput, opts RunOptions) (*Outcome, error) {
	runID := uuid.NewString()
	logger := s.logger.With(logging.RunID(runID))

	evaluationTime := opts.EvaluationTime
	if evaluationTime.IsZero() {
		evaluationTime = input.EvaluationTime
	}
	if evaluationTime.IsZero() {
		evaluationTime = time.Now().UTC()
	}
	input.EvaluationTime = evaluationTime

	outcome := &Outcome{RunID: runID}

	s.stage(logger, "assemble", func() {
		outcome.Snapshot = graph.Assemble(input, s.cfg.Decay)
	})
	logger.Info("snapshot assembled",
		logging.Nodes(len(outcome.Snapshot.Nodes)),
		logging.Edges(len(outcome.Snapshot.Edges)),
	)

	if opts.PersistSnapshot && s.cache != nil {
		key := opts.CacheKey
		if key == "" {
			key = runID
		}
		if err := s.cache.Store(ctx, key, outcome.Snapshot); err != nil {
			if s.metrics != nil {
				s.metrics.RecordCacheWrite("error")
				s.metrics.RecordRun("error")
			}
			logger.Error("snapshot cache write failed", logging.Err(err))
			return nil, fmt.Errorf("persist snapshot %q: %w", key, err)
		}
		if s.metrics != nil {
			s.metrics.RecordCacheWrite("ok")
		}
	}

	s.stage(logger, "louvain", func() {
		outcome.Louvain = algorithms.Louvain(outcome.Snapshot, s.cfg.LouvainOptions())
	})
	logger.Info("louvain complete",
		logging.Communities(len(outcome.Louvain.Communities)),
		logging.Modularity(outcome.Louvain.Modularity),
	)

	s.stage(logger, "label_propagation", func() {
		outcome.LabelPropagation = algorithms.LabelPropagation(outcome.Snapshot, s.cfg.PropagationOptions())
	})

	s.stage(logger, "hierarchy", func() {
		outcome.Hierarchy = algorithms.Hierarchical(outcome.Snapshot, outcome.Louvain.Assignments)
	})

	s.stage(logger, "centrality", func() {
		outcome.Centrality = algorithms.AnalyzeCentrality(outcome.Snapshot, s.cfg.CentralityOptions())
	})

	s.stage(logger, "anomalies", func() {
		outcome.Anomalies = algorithms.DetectAnomalies(outcome.Centrality, s.cfg.AnomalyOptions())
	})

	// Trends always evaluate against the snapshot's generation time, not any
	// assembly-time override the caller passed.
	s.stage(logger, "trends", func() {
		outcome.Trends = algorithms.EvaluateCommunityTrends(
			outcome.Snapshot,
			outcome.Louvain.Assignments,
			outcome.Snapshot.GeneratedAt,
			s.cfg.TrendOptions(),
		)
	})

	if s.metrics != nil {
		s.metrics.RecordRun("ok")
		s.metrics.UpdateSnapshot(
			len(outcome.Snapshot.Nodes),
			len(outcome.Snapshot.Edges),
			outcome.Centrality.TotalEdgeWeight,
		)
		s.metrics.CommunitiesDetected.WithLabelValues("louvain").Set(float64(len(outcome.Louvain.Communities)))
		s.metrics.CommunitiesDetected.WithLabelValues("label_propagation").Set(float64(len(outcome.LabelPropagation.Communities)))
		s.metrics.AnomaliesFlagged.Set(float64(len(outcome.Anomalies)))
	}

	logger.Info("pipeline run complete",
		logging.Communities(len(outcome.Louvain.Communities)),
		logging.Int("anomalies", len(outcome.Anomalies)),
		logging.Int("trend_summaries", len(outcome.Trends)),
	)

	return outcome, nil
}
