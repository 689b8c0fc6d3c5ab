package scaling

// Stock depth scaling factors.
const (
	DefaultStatScaling   = 0.1
	DefaultValueScaling  = 0.05
	DefaultRarityScaling = 1.0
)

// MaxAffixes is the largest affix count any rarity may roll.
const MaxAffixes = 4

// SettingsVersion is written by Save and expected by Load.
const SettingsVersion = "1.0"

// Error context messages for wrapped errors during settings loading
const (
	ErrContextFailedToReadSettings   = "failed to read generation settings"
	ErrContextFailedToDecodeSettings = "failed to decode generation settings"
)
