package loot

// ============================================================================
// Configuration
// ============================================================================

// Version is written by Save.
const Version = "1.0"

// Stock table names
const (
	DefaultTableName     = "depth_1_5"
	DefaultMonsterTable  = "goblin"
	DefaultContainerName = "wooden_chest"
)

// DefaultMaxRecursion bounds how deep table references are followed.
const DefaultMaxRecursion = 8

// DefaultCacheSize is the number of compiled tables kept in memory.
const DefaultCacheSize = 128

// batchSeedStride separates the per-request streams of a batch.
const batchSeedStride = 0x9E3779B97F4A7C15

// ============================================================================
// Error Messages
// ============================================================================

// Error context messages for wrapped errors during loot table loading
const (
	ErrContextFailedToReadLootFile  = "failed to read loot tables file"
	ErrContextFailedToParseLootFile = "failed to parse loot tables"
	ErrContextFailedToCompileTable  = "failed to compile loot table"
	ErrContextFailedToSpawnItem     = "failed to spawn item"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnknownTable      = "unknown loot table, falling back to default"
	LogMsgRecursionTruncate = "loot table recursion limit reached, branch truncated"
	LogMsgLootResolved      = "loot resolved"
	LogMsgTablesReloaded    = "loot tables reloaded"
	LogMsgReloadFailed      = "loot table reload failed, keeping current tables"
	LogMsgItemSpawned       = "item spawned"
	LogMsgSpawnFailed       = "failed to spawn item"
)

// Log field keys for structured logging
const (
	LogFieldTable    = "table"
	LogFieldFallback = "fallback"
	LogFieldDepth    = "depth"
	LogFieldLevel    = "level"
	LogFieldItems    = "items"
	LogFieldWarnings = "warnings"
	LogFieldPath     = "path"
	LogFieldItem     = "item"
	LogFieldHandle   = "handle"
	LogFieldError    = "error"
)
