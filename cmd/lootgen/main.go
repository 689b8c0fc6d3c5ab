// Command lootgen rolls loot from the configured tables and prints the
// generated items as JSON. It is a development preview of the data files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/osse101/delvegen/internal/config"
	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/logger"
	"github.com/osse101/delvegen/internal/loot"
	"github.com/osse101/delvegen/internal/rng"
)

type output struct {
	Seed    uint64       `json:"seed"`
	Depth   int          `json:"depth"`
	Stats   *loot.Stats  `json:"stats,omitempty"`
	Results []rollOutput `json:"results"`
}

type rollOutput struct {
	*loot.Result
	Warnings []string `json:"warnings,omitempty"`
}

func main() {
	table := flag.String("table", "", "Loot table to resolve")
	monster := flag.String("monster", "", "Monster whose drops to roll")
	location := flag.String("location", "", "Special location to roll (falls back to the depth table)")
	container := flag.String("container", "", "Container to open (chest, iron_chest, golden_chest, ...)")
	depth := flag.Int("depth", 1, "Dungeon depth")
	count := flag.Int("n", 1, "Number of rolls")
	seedFlag := flag.Uint64("seed", 0, "Random seed (overrides "+config.EnvSeed+")")
	stats := flag.Bool("stats", false, "Include loot table statistics")
	dump := flag.Bool("dump", false, "Write the built-in data files to the data directory and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	initLogger(cfg)

	if *dump {
		if err := dumpDefaults(cfg); err != nil {
			log.Fatalf("Failed to write defaults: %v", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote built-in data files to %s\n", cfg.DataDir)
		return
	}

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	mgr, err := buildManager(cfg)
	if err != nil {
		log.Fatalf("Failed to load data files: %v", err)
	}

	seed := pickSeed(cfg, *seedFlag)
	ctx := logger.WithBatchID(context.Background(), logger.GenerateBatchID())
	logger.FromContext(ctx).Info("rolling loot", "seed", seed, "depth", *depth, "rolls", *count)

	src := rng.New(seed)
	roll := func() (*loot.Result, error) {
		switch {
		case *table != "":
			return mgr.Resolve(ctx, *table, *depth, domain.ContextRandom, src)
		case *monster != "":
			return mgr.ResolveMonster(ctx, *monster, *depth, src)
		case *location != "":
			return mgr.ResolveLocation(ctx, *location, *depth, src)
		case *container != "":
			return mgr.ResolveContainer(ctx, *container, *depth, src)
		default:
			return mgr.ResolveDepth(ctx, *depth, src)
		}
	}

	out := output{Seed: seed, Depth: *depth}
	if *stats {
		s := mgr.Stats()
		out.Stats = &s
	}
	for i := 0; i < *count; i++ {
		res, err := roll()
		if err != nil {
			log.Fatalf("Roll %d failed: %v", i+1, err)
		}
		ro := rollOutput{Result: res}
		for _, w := range res.Warnings {
			ro.Warnings = append(ro.Warnings, w.Error())
		}
		out.Results = append(out.Results, ro)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}
}

// pickSeed prefers the -seed flag, then DELVEGEN_SEED, then a fresh seed
// that is logged so the run can be replayed.
func pickSeed(cfg *config.Config, flagSeed uint64) uint64 {
	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	switch {
	case seedSet:
		return flagSeed
	case cfg.HasSeed:
		return cfg.Seed
	}
	seed := rand.Uint64() //nolint:gosec // seed for a preview tool, not security critical
	logger.Info("no seed given, using a random one", "seed", seed)
	return seed
}
