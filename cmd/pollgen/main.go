package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"pollscape/cmd/pollgen/engine"
	"pollscape/internal/polls"
)

func main() {
	preset := flag.String("preset", "current", "Preset to generate: current, tight, fragmented")
	sample := flag.Int("sample", 2000, "Respondents per poll (sets interval width)")
	jitter := flag.Float64("jitter", 0, "Standard deviation in points added to the preset averages")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	out := flag.String("out", "./.cache/polls.json", "Output file (.json, .yaml or .yml)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Preset:     *preset,
		SampleSize: *sample,
		Jitter:     *jitter,
		Seed:       *seed,
		Now:        time.Now(),
	}

	fmt.Printf("Generating preset '%s' (Sample: %d, Jitter: %.1f) to %s...\n", cfg.Preset, cfg.SampleSize, cfg.Jitter, *out)

	ds, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate poll data: %v\n", err)
		os.Exit(1)
	}
	if err := polls.Save(*out, ds); err != nil {
		fmt.Printf("Failed to save poll data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
