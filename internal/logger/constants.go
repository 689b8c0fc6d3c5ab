package logger

// Log levels accepted by Config.Level. "warning" is an alias for "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// LogFormatJSON selects the JSON handler; anything else logs text.
const LogFormatJSON = "json"

const (
	ServiceName    = "delvegen"
	DefaultVersion = "dev"

	// EnvironmentDev turns on source locations.
	EnvironmentDev = "dev"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyBatchID     = "batch_id"
)
