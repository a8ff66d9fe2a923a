// Package logger builds the application's slog.Logger on top of a zap core.
package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger at level ("debug", "info", "warn",
// "error"; empty means info) and the zap logger behind it, which the caller
// should Sync before exit.
func New(level string) (*slog.Logger, *zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	return FromZap(zl), zl, nil
}

// FromZap wraps an existing zap logger.
func FromZap(zl *zap.Logger) *slog.Logger {
	return slog.New(zapslog.NewHandler(zl.Core()))
}
