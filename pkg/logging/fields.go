package logging

import "time"

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers.

// Stage names a pipeline stage.
func Stage(name string) Field {
	return String("stage", name)
}

// RunID tags entries with the pipeline run identifier.
func RunID(id string) Field {
	return String("run_id", id)
}

// Nodes records a snapshot's node count.
func Nodes(n int) Field {
	return Int("nodes", n)
}

// Edges records a snapshot's edge count.
func Edges(n int) Field {
	return Int("edges", n)
}

// Communities records a partition's community count.
func Communities(n int) Field {
	return Int("communities", n)
}

// Modularity records a partition's modularity score.
func Modularity(m float64) Field {
	return Float64("modularity", m)
}

// Latency records an operation duration.
func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
