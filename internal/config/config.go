package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir     string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`

	// Seed for reproducible runs. HasSeed is false when DELVEGEN_SEED is unset,
	// in which case callers pick a fresh seed and log it.
	Seed    uint64
	HasSeed bool

	// Loot overrides. The Has flags are false when the variable is unset, so
	// the loot file's own settings apply.
	MaxRecursion    int    `validate:"gte=1,lte=64"`
	DefaultTable    string `validate:"required"`
	HasMaxRecursion bool
	HasDefaultTable bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv(EnvDataDir, DefaultDataDir),
		LogLevel:     getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:    getEnv(EnvLogFormat, DefaultLogFormat),
		Environment:  getEnv(EnvEnvironment, DefaultEnvironment),
		MaxRecursion: getEnvAsInt(EnvMaxRecursion, DefaultMaxRecursion),
		DefaultTable: getEnv(EnvDefaultTable, DefaultTableName),
	}

	if raw, ok := os.LookupEnv(EnvSeed); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}
	_, cfg.HasDefaultTable = os.LookupEnv(EnvDefaultTable)
	if raw, ok := os.LookupEnv(EnvMaxRecursion); ok {
		_, err := strconv.Atoi(raw)
		cfg.HasMaxRecursion = err == nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LootTablesPath is the loot table file inside DataDir.
func (c *Config) LootTablesPath() string { return filepath.Join(c.DataDir, FileLootTables) }

// AffixesPath is the affix table file inside DataDir.
func (c *Config) AffixesPath() string { return filepath.Join(c.DataDir, FileAffixes) }

// NamesPath is the name pool file inside DataDir.
func (c *Config) NamesPath() string { return filepath.Join(c.DataDir, FileNames) }

// GenerationPath is the generation settings file inside DataDir.
func (c *Config) GenerationPath() string { return filepath.Join(c.DataDir, FileGeneration) }

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to
// defaultValue when unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
