package generator

// Log messages
const (
	LogMsgItemGenerated  = "item generated"
	LogMsgEmptyAffixPool = "no affix pool for item type, generating without affixes"
	LogMsgSettingsLoaded = "generation settings loaded"
)

// Log field keys
const (
	LogFieldType    = "item_type"
	LogFieldRarity  = "rarity"
	LogFieldDepth   = "depth"
	LogFieldName    = "name"
	LogFieldValue   = "value"
	LogFieldAffixes = "affixes"
	LogFieldPath    = "path"
	LogFieldError   = "error"
)

// Metric reason labels
const (
	ReasonInvalidDepth  = "invalid_depth"
	ReasonInvalidRarity = "invalid_rarity"
	ReasonUnknownType   = "unknown_type"
	ReasonBadContext    = "bad_context"
)
