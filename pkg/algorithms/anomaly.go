package algorithms

import (
	"math"
	"sort"
)

// AnomalyOptions configures the statistical thresholding.
type AnomalyOptions struct {
	ZScoreThreshold float64 // |z| above which a node is flagged
	MinPopulation   int     // Below this node count nothing is flagged
}

// DefaultAnomalyOptions returns the default anomaly configuration.
func DefaultAnomalyOptions() AnomalyOptions {
	return AnomalyOptions{
		ZScoreThreshold: 2.5,
		MinPopulation:   4,
	}
}

// Anomaly metric names.
const (
	AnomalyMetricPageRank = "pagerank"
	AnomalyMetricStrength = "strength"
)

// Anomaly flags one statistically unusual node with the metric that
// triggered it.
type Anomaly struct {
	NodeID string  `json:"nodeId"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	ZScore float64 `json:"zScore"`
}

// DetectAnomalies flags nodes whose PageRank or total strength (in+out)
// deviates from the population mean by more than the z-score threshold. A
// node flagged on both metrics is reported once, on the larger deviation.
// Results sort by |z| descending, node id ascending on ties.
func DetectAnomalies(report *CentralityReport, opts AnomalyOptions) []Anomaly {
	if report == nil || len(report.Metrics) < opts.MinPopulation {
		return nil
	}

	nodeIDs := make([]string, 0, len(report.Metrics))
	pageRank := make(map[string]float64, len(report.Metrics))
	strength := make(map[string]float64, len(report.Metrics))
	for id, vec := range report.Metrics {
		nodeIDs = append(nodeIDs, id)
		pageRank[id] = vec.PageRank
		strength[id] = vec.InStrength + vec.OutStrength
	}
	sort.Strings(nodeIDs)

	prMean, prStd := meanStdDev(pageRank)
	stMean, stStd := meanStdDev(strength)

	anomalies := make([]Anomaly, 0)
	for _, id := range nodeIDs {
		prZ := zScore(pageRank[id], prMean, prStd)
		stZ := zScore(strength[id], stMean, stStd)

		candidate := Anomaly{NodeID: id, Metric: AnomalyMetricPageRank, Value: pageRank[id], Mean: prMean, StdDev: prStd, ZScore: prZ}
		if math.Abs(stZ) > math.Abs(prZ) {
			candidate = Anomaly{NodeID: id, Metric: AnomalyMetricStrength, Value: strength[id], Mean: stMean, StdDev: stStd, ZScore: stZ}
		}

		if math.Abs(candidate.ZScore) > opts.ZScoreThreshold {
			anomalies = append(anomalies, candidate)
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		zi, zj := math.Abs(anomalies[i].ZScore), math.Abs(anomalies[j].ZScore)
		if zi != zj {
			return zi > zj
		}
		return anomalies[i].NodeID < anomalies[j].NodeID
	})

	return anomalies
}

func meanStdDev(values map[string]float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func zScore(value, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (value - mean) / stdDev
}
