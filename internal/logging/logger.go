// Package logging builds the zap logger used by a run.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelNone disables logging.
const LevelNone = "none"

// New returns a production zap logger at level, writing to stderr.
func New(level string) (*zap.Logger, error) {
	level = strings.ToLower(level)
	if level == LevelNone {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
