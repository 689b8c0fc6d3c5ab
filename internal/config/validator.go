package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/osse101/delvegen/internal/validation"
)

// Validate checks field constraints after normalising case.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Warnings reports non-fatal issues: missing data files (stock tables are
// used instead) and runs without a fixed seed.
func (c *Config) Warnings() []string {
	var warnings []string
	if !c.HasSeed {
		warnings = append(warnings, EnvSeed+" is not set - runs will not be reproducible")
	}
	for _, path := range []string{c.LootTablesPath(), c.AffixesPath(), c.NamesPath(), c.GenerationPath()} {
		if _, err := os.Stat(path); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s not found - using built-in defaults", path))
		}
	}
	return warnings
}
