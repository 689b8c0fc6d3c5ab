package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/osse101/delvegen/internal/affix"
	"github.com/osse101/delvegen/internal/config"
	"github.com/osse101/delvegen/internal/generator"
	"github.com/osse101/delvegen/internal/logger"
	"github.com/osse101/delvegen/internal/loot"
	"github.com/osse101/delvegen/internal/naming"
	"github.com/osse101/delvegen/internal/scaling"
	"github.com/osse101/delvegen/internal/validation"
)

// buildManager wires the generator and loot manager from the data directory.
// Each missing data file is replaced by its built-in default.
func buildManager(cfg *config.Config) (*loot.Manager, error) {
	sv := validation.NewSchemaValidator()

	affixes := affix.Default()
	if exists(cfg.AffixesPath()) {
		r, err := affix.Load(cfg.AffixesPath(), sv)
		if err != nil {
			return nil, err
		}
		affixes = r
	}

	names, err := naming.NewGenerator(cfg.NamesPath(), sv)
	if err != nil {
		return nil, err
	}

	settings := scaling.DefaultSettings()
	if exists(cfg.GenerationPath()) {
		s, err := scaling.LoadSettings(cfg.GenerationPath(), sv)
		if err != nil {
			return nil, err
		}
		settings = s
	}

	gen, err := generator.New(generator.Config{
		Affixes:  affixes,
		Names:    names,
		Settings: &settings,
	})
	if err != nil {
		return nil, err
	}

	opts := lootOptions(cfg)
	opts.Validator = sv
	var mgr *loot.Manager
	if exists(cfg.LootTablesPath()) {
		mgr, err = loot.Load(cfg.LootTablesPath(), gen, opts)
		if err != nil {
			return nil, err
		}
	} else {
		mgr = loot.Default(gen, opts)
	}

	if err := mgr.Check(gen.Catalog()); err != nil {
		return nil, err
	}
	s := mgr.Stats()
	logger.Info("data files loaded",
		"data_dir", cfg.DataDir,
		"tables", s.Tables,
		"entries", s.Entries,
		"affix_types", len(affixes.Types()))
	return mgr, nil
}

// lootOptions carries only the overrides set in the environment; everything
// else comes from the loot file, then the package defaults.
func lootOptions(cfg *config.Config) loot.Options {
	var opts loot.Options
	if cfg.HasMaxRecursion {
		opts.MaxRecursion = cfg.MaxRecursion
	}
	if cfg.HasDefaultTable {
		opts.DefaultTable = cfg.DefaultTable
	}
	return opts
}

// dumpDefaults writes every built-in data file into the data directory.
func dumpDefaults(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", cfg.DataDir, err)
	}
	return errors.Join(
		loot.SaveFile(cfg.LootTablesPath(), loot.DefaultFile()),
		affix.Default().Save(cfg.AffixesPath()),
		naming.NewGeneratorWithPools(naming.DefaultPools()).Save(cfg.NamesPath()),
		scaling.DefaultSettings().Save(cfg.GenerationPath()),
	)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
