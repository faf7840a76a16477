// Package logging builds the categorized zap loggers used across coind.
// Each category is a named child of one root logger; categories disabled in
// the configuration get a no-op logger.
package logging

import (
	"strings"

	"coinduct/internal/config"
	"coinduct/internal/errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryCompanion Category = "companion" // Fixpoint chain and proof steps
	CategoryOracle    Category = "oracle"    // Mangle oracle evaluation
	CategoryCLI       Category = "cli"       // Command dispatch
)

// AllCategories lists every category.
var AllCategories = []Category{CategoryCompanion, CategoryOracle, CategoryCLI}

// ParseLevel maps a configured level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, errors.Wrapf(errors.ErrInvalidConfig, "unknown log level %q", level)
}

// New builds the root logger. The json format uses zap's production
// encoder; text uses the console encoder.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}

// Named returns the child logger for a category, or a no-op logger when the
// category is disabled. A nil root yields a no-op logger.
func Named(root *zap.Logger, cfg config.LoggingConfig, category Category) *zap.Logger {
	if root == nil || !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return root.Named(string(category))
}
