package main

import (
	"os"

	"github.com/osse101/delvegen/internal/config"
	"github.com/osse101/delvegen/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = logger.DefaultVersion

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	loggerConfig := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, version, cfg.Environment)

	// Results go to stdout, so logs go to stderr.
	logger.InitLoggerWithWriter(loggerConfig, os.Stderr)
}
