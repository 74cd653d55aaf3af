// Package config loads and validates the tunable parameters of the analytics
// pipeline: the per-kind decay table and the knobs of each analytic stage.
// Absent files and absent fields fall back to defaults, so a zero-config
// deployment behaves exactly like the documented scoring contract.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/graphpulse/graphpulse/pkg/algorithms"
	"github.com/graphpulse/graphpulse/pkg/graph"
)

var validate = validator.New()

// LouvainConfig tunes community detection.
type LouvainConfig struct {
	MaxPasses  int     `yaml:"maxPasses" validate:"gt=0"`
	Resolution float64 `yaml:"resolution" validate:"gt=0"`
	MinGain    float64 `yaml:"minGain" validate:"gte=0"`
}

// PageRankConfig tunes the centrality power iteration.
type PageRankConfig struct {
	DampingFactor float64 `yaml:"dampingFactor" validate:"gt=0,lt=1"`
	MaxIterations int     `yaml:"maxIterations" validate:"gt=0"`
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0"`
}

// PropagationConfig tunes label propagation.
type PropagationConfig struct {
	MaxRounds int `yaml:"maxRounds" validate:"gt=0"`
}

// TrendConfig tunes the momentum windows.
type TrendConfig struct {
	RecentWindowHours   float64 `yaml:"recentWindowHours" validate:"gt=0"`
	LookbackWindowHours float64 `yaml:"lookbackWindowHours" validate:"gt=0"`
	MinimumWeight       float64 `yaml:"minimumWeight" validate:"gt=0"`
}

// AnomalyConfig tunes the statistical thresholding.
type AnomalyConfig struct {
	ZScoreThreshold float64 `yaml:"zScoreThreshold" validate:"gt=0"`
	MinPopulation   int     `yaml:"minPopulation" validate:"gte=0"`
}

// Config is the full pipeline tuning surface.
type Config struct {
	Decay       map[graph.EdgeKind]graph.DecayParams `yaml:"decay" validate:"dive"`
	Louvain     LouvainConfig                        `yaml:"louvain"`
	PageRank    PageRankConfig                       `yaml:"pageRank"`
	Propagation PropagationConfig                    `yaml:"propagation"`
	Trends      TrendConfig                          `yaml:"trends"`
	Anomalies   AnomalyConfig                        `yaml:"anomalies"`
}

// Default returns the documented default configuration.
func Default() Config {
	louvain := algorithms.DefaultLouvainOptions()
	pagerank := algorithms.DefaultCentralityOptions()
	propagation := algorithms.DefaultLabelPropagationOptions()
	trends := algorithms.DefaultTrendOptions()
	anomalies := algorithms.DefaultAnomalyOptions()

	return Config{
		Decay: graph.DefaultDecayTable(),
		Louvain: LouvainConfig{
			MaxPasses:  louvain.MaxPasses,
			Resolution: louvain.Resolution,
			MinGain:    louvain.MinGain,
		},
		PageRank: PageRankConfig{
			DampingFactor: pagerank.DampingFactor,
			MaxIterations: pagerank.MaxIterations,
			Tolerance:     pagerank.Tolerance,
		},
		Propagation: PropagationConfig{
			MaxRounds: propagation.MaxRounds,
		},
		Trends: TrendConfig{
			RecentWindowHours:   trends.RecentWindowHours,
			LookbackWindowHours: trends.LookbackWindowHours,
			MinimumWeight:       trends.MinimumWeight,
		},
		Anomalies: AnomalyConfig{
			ZScoreThreshold: anomalies.ZScoreThreshold,
			MinPopulation:   anomalies.MinPopulation,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
// A missing file is not an error; it simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every tuning value against its struct constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// LouvainOptions converts the config into algorithm options.
func (c Config) LouvainOptions() algorithms.LouvainOptions {
	return algorithms.LouvainOptions{
		MaxPasses:  c.Louvain.MaxPasses,
		Resolution: c.Louvain.Resolution,
		MinGain:    c.Louvain.MinGain,
	}
}

// CentralityOptions converts the config into algorithm options.
func (c Config) CentralityOptions() algorithms.CentralityOptions {
	return algorithms.CentralityOptions{
		DampingFactor: c.PageRank.DampingFactor,
		MaxIterations: c.PageRank.MaxIterations,
		Tolerance:     c.PageRank.Tolerance,
	}
}

// PropagationOptions converts the config into algorithm options.
func (c Config) PropagationOptions() algorithms.LabelPropagationOptions {
	return algorithms.LabelPropagationOptions{MaxRounds: c.Propagation.MaxRounds}
}

// TrendOptions converts the config into algorithm options.
func (c Config) TrendOptions() algorithms.TrendOptions {
	return algorithms.TrendOptions{
		RecentWindowHours:   c.Trends.RecentWindowHours,
		LookbackWindowHours: c.Trends.LookbackWindowHours,
		MinimumWeight:       c.Trends.MinimumWeight,
	}
}

// AnomalyOptions converts the config into algorithm options.
func (c Config) AnomalyOptions() algorithms.AnomalyOptions {
	return algorithms.AnomalyOptions{
		ZScoreThreshold: c.Anomalies.ZScoreThreshold,
		MinPopulation:   c.Anomalies.MinPopulation,
	}
}
