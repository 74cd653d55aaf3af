package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/graphpulse/graphpulse/pkg/config"
	"github.com/graphpulse/graphpulse/pkg/graph"
	"github.com/graphpulse/graphpulse/pkg/logging"
	"github.com/graphpulse/graphpulse/pkg/metrics"
	"github.com/graphpulse/graphpulse/pkg/pipeline"
	"github.com/graphpulse/graphpulse/pkg/snapshotcache"
)

func main() {
	inputPath := flag.String("input", "", "JSON file with the assembly input records")
	configPath := flag.String("config", "graphpulse.yaml", "Pipeline config file (missing file uses defaults)")
	cacheDir := flag.String("cache-dir", "", "Directory for persisted snapshots (empty disables persistence)")
	cacheKey := flag.String("cache-key", "", "Snapshot cache key (defaults to the run id)")
	outputPath := flag.String("output", "", "Write the run outcome JSON here (default stdout)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing -input file")
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	var input graph.AssemblyInput
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatalf("parse input: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	opts := []pipeline.Option{
		pipeline.WithConfig(cfg),
		pipeline.WithLogger(logging.NewDefaultLogger()),
		pipeline.WithMetrics(metrics.NewRegistry()),
	}
	if *cacheDir != "" {
		store, err := snapshotcache.NewFileStore(*cacheDir)
		if err != nil {
			log.Fatalf("open snapshot cache: %v", err)
		}
		opts = append(opts, pipeline.WithCache(store))
	}

	service := pipeline.NewService(opts...)
	outcome, err := service.Run(context.Background(), input, pipeline.RunOptions{
		CacheKey:        *cacheKey,
		PersistSnapshot: *cacheDir != "",
	})
	if err != nil {
		log.Fatalf("pipeline run: %v", err)
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcome); err != nil {
		log.Fatalf("write outcome: %v", err)
	}
}
