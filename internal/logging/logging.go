// Package logging rebuilds the global zap logger from configuration.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Setup replaces the global logger. env "production" selects JSON output
// without stack traces; anything else selects the development console
// encoder. The returned function flushes and restores the previous logger.
func Setup(level, env string) (func(), error) {
	var cfg zap.Config
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.Level = lvl
	// stdout carries command output (and the MCP stdio transport).
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": "smartwallet-console"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}, nil
}
