package config

// Environment variable names
const (
	EnvDataDir      = "DELVEGEN_DATA_DIR"
	EnvSeed         = "DELVEGEN_SEED"
	EnvMaxRecursion = "DELVEGEN_MAX_RECURSION"
	EnvDefaultTable = "DELVEGEN_DEFAULT_TABLE"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvEnvironment  = "ENVIRONMENT"
)

// Defaults
const (
	DefaultDataDir      = "configs"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultEnvironment  = "dev"
	DefaultMaxRecursion = 8
	DefaultTableName    = "depth_1_5"
)

// Data file names inside the data directory
const (
	FileLootTables = "loot_tables.json"
	FileAffixes    = "affixes.json"
	FileNames      = "names.json"
	FileGeneration = "generation.json"
)
