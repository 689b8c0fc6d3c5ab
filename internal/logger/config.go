package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler, level and base attributes of the generator's logs.
type Config struct {
	Level       string
	Format      string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config for environment. Source locations are only
// attached in the dev environment.
func NewConfig(level, format, version, environment string) Config {
	return Config{
		Level:       level,
		Format:      format,
		Version:     version,
		Environment: environment,
		AddSource:   strings.EqualFold(environment, EnvironmentDev),
	}
}

// LogLevel maps Level to a slog level; unknown names log at info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) isJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) baseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
