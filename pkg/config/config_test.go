package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

func TestDefaultMatchesAlgorithmDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Louvain.MaxPasses != 12 || cfg.Louvain.Resolution != 1.0 {
		t.Errorf("unexpected louvain defaults: %+v", cfg.Louvain)
	}
	if cfg.PageRank.DampingFactor != 0.85 || cfg.PageRank.MaxIterations != 40 {
		t.Errorf("unexpected pagerank defaults: %+v", cfg.PageRank)
	}
	if cfg.Propagation.MaxRounds != 20 {
		t.Errorf("unexpected propagation defaults: %+v", cfg.Propagation)
	}
	if cfg.Trends.RecentWindowHours != 24 || cfg.Trends.LookbackWindowHours != 168 {
		t.Errorf("unexpected trend defaults: %+v", cfg.Trends)
	}
	if cfg.Anomalies.ZScoreThreshold != 2.5 || cfg.Anomalies.MinPopulation != 4 {
		t.Errorf("unexpected anomaly defaults: %+v", cfg.Anomalies)
	}

	author, ok := cfg.Decay[graph.EdgeKindAuthor]
	if !ok {
		t.Fatal("decay table missing author entry")
	}
	if author.Base != 2 || author.HalfLifeHours != 720 {
		t.Errorf("unexpected author decay: %+v", author)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.PageRank.DampingFactor != Default().PageRank.DampingFactor {
		t.Errorf("missing file should yield defaults, got %+v", cfg.PageRank)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := `
louvain:
  resolution: 1.4
pageRank:
  maxIterations: 80
decay:
  like:
    base: 0.9
    halfLifeHours: 48
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Louvain.Resolution != 1.4 {
		t.Errorf("resolution not overridden: %v", cfg.Louvain.Resolution)
	}
	if cfg.Louvain.MaxPasses != 12 {
		t.Errorf("untouched field lost its default: %v", cfg.Louvain.MaxPasses)
	}
	if cfg.PageRank.MaxIterations != 80 {
		t.Errorf("maxIterations not overridden: %v", cfg.PageRank.MaxIterations)
	}

	like := cfg.Decay[graph.EdgeKindLike]
	if like.Base != 0.9 || like.HalfLifeHours != 48 {
		t.Errorf("like decay not overridden: %+v", like)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := `
pageRank:
  dampingFactor: 1.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("damping factor above 1 should fail validation")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("louvain: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestOptionConverters(t *testing.T) {
	cfg := Default()
	cfg.Louvain.Resolution = 2.0
	cfg.Anomalies.ZScoreThreshold = 3.0

	if got := cfg.LouvainOptions().Resolution; got != 2.0 {
		t.Errorf("LouvainOptions resolution = %v", got)
	}
	if got := cfg.AnomalyOptions().ZScoreThreshold; got != 3.0 {
		t.Errorf("AnomalyOptions threshold = %v", got)
	}
	if got := cfg.CentralityOptions().DampingFactor; got != 0.85 {
		t.Errorf("CentralityOptions damping = %v", got)
	}
	if got := cfg.PropagationOptions().MaxRounds; got != 20 {
		t.Errorf("PropagationOptions rounds = %v", got)
	}
	if got := cfg.TrendOptions().MinimumWeight; got != 0.01 {
		t.Errorf("TrendOptions minimum weight = %v", got)
	}
}
