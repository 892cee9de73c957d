// Command simulate emulates a student progressing through a ten-lesson
// track against a running predictor API.
package main

import (
	"flag"
	"log"

	"bkt_predictor/internal/simulation"
)

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8001", "predictor API base URL")
	iterLimit := flag.Int("iter-limit", 100, "maximum number of iterations")
	minActions := flag.Int("min-actions-per-lesson", 8, "attempts required before a lesson can complete on mastery")
	seed := flag.Int64("seed", 0, "RNG seed for a reproducible run")
	verbose := flag.Bool("verbose", false, "print one line per step")
	logJSONL := flag.String("log-jsonl", "", "write one JSON line per event to this file")
	transition := flag.Float64("transition", 0.05, "learning transition applied on observe")
	flag.Parse()

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	runner := simulation.NewRunner(simulation.Options{
		BaseURL:             *baseURL,
		IterLimit:           *iterLimit,
		MinActionsPerLesson: *minActions,
		Seed:                *seed,
		HasSeed:             seedSet,
		Verbose:             *verbose,
		LogJSONL:            *logJSONL,
		Transition:          *transition,
	})

	if _, err := runner.Run(); err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
}
