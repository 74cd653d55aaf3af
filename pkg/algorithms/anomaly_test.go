package algorithms

import (
	"testing"
)

// reportWithOutlier builds a centrality report where one node's strength is
// far outside an otherwise uniform population.
func reportWithOutlier(population int, outlierStrength float64) *CentralityReport {
	metrics := make(map[string]CentralityVector, population+1)
	for i := 0; i < population; i++ {
		metrics[nodeName(i)] = CentralityVector{PageRank: 0.1, InStrength: 1.0, OutStrength: 1.0}
	}
	metrics["whale"] = CentralityVector{PageRank: 0.1, InStrength: outlierStrength, OutStrength: 0}
	return &CentralityReport{Metrics: metrics}
}

func nodeName(i int) string {
	return string(rune('a' + i))
}

func TestDetectAnomalies_FlagsStrengthOutlier(t *testing.T) {
	report := reportWithOutlier(10, 100.0)
	anomalies := DetectAnomalies(report, DefaultAnomalyOptions())

	if len(anomalies) == 0 {
		t.Fatal("expected the whale to be flagged")
	}
	top := anomalies[0]
	if top.NodeID != "whale" || top.Metric != AnomalyMetricStrength {
		t.Errorf("top anomaly = %+v, want whale on strength", top)
	}
	if top.ZScore <= DefaultAnomalyOptions().ZScoreThreshold {
		t.Errorf("zScore = %v, want above threshold", top.ZScore)
	}
	if top.Value != 100.0 {
		t.Errorf("value = %v, want the triggering metric's value", top.Value)
	}
}

func TestDetectAnomalies_UniformPopulationClean(t *testing.T) {
	metrics := make(map[string]CentralityVector)
	for i := 0; i < 8; i++ {
		metrics[nodeName(i)] = CentralityVector{PageRank: 0.125, InStrength: 2, OutStrength: 2}
	}
	report := &CentralityReport{Metrics: metrics}

	if anomalies := DetectAnomalies(report, DefaultAnomalyOptions()); len(anomalies) != 0 {
		t.Errorf("uniform population flagged: %+v", anomalies)
	}
}

func TestDetectAnomalies_SmallPopulationSkipped(t *testing.T) {
	report := reportWithOutlier(2, 1000.0)
	if anomalies := DetectAnomalies(report, DefaultAnomalyOptions()); anomalies != nil {
		t.Errorf("population below minimum should not be scored: %+v", anomalies)
	}
}

func TestDetectAnomalies_NilReport(t *testing.T) {
	if anomalies := DetectAnomalies(nil, DefaultAnomalyOptions()); anomalies != nil {
		t.Errorf("nil report should yield nil, got %+v", anomalies)
	}
}

func TestDetectAnomalies_SortedByDeviation(t *testing.T) {
	metrics := make(map[string]CentralityVector)
	for i := 0; i < 10; i++ {
		metrics[nodeName(i)] = CentralityVector{PageRank: 0.1, InStrength: 1, OutStrength: 1}
	}
	metrics["big"] = CentralityVector{PageRank: 0.1, InStrength: 150, OutStrength: 0}
	metrics["bigger"] = CentralityVector{PageRank: 0.1, InStrength: 200, OutStrength: 0}
	report := &CentralityReport{Metrics: metrics}

	anomalies := DetectAnomalies(report, AnomalyOptions{ZScoreThreshold: 1.0, MinPopulation: 4})
	if len(anomalies) < 2 {
		t.Fatalf("expected both outliers flagged, got %+v", anomalies)
	}
	if anomalies[0].NodeID != "bigger" {
		t.Errorf("expected the largest deviation first, got %+v", anomalies[0])
	}
}
