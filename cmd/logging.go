package cmd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a stderr logger for the given verbosity.
//
//	quiet       errors only
//	normal      warnings, such as unparseable tags
//	verbose     progress
//	diagnostic  calculation internals, with caller and stack traces
func newLogger(verbosity string) (*zap.Logger, error) {
	var level zapcore.Level
	switch strings.ToLower(verbosity) {
	case "quiet":
		level = zapcore.ErrorLevel
	case "normal", "":
		level = zapcore.WarnLevel
	case "verbose":
		level = zapcore.InfoLevel
	case "diagnostic":
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown verbosity %q: expected quiet, normal, verbose or diagnostic", verbosity)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level.SetLevel(level)
	if level != zapcore.DebugLevel {
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return l, nil
}
