// Package logging builds the file-backed logger. The terminal belongs to
// the TUI, so diagnostics go to a file under the XDG data dir.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Open returns a logger writing JSON lines to the given path.
func Open(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// OpenOrNop returns a file logger, or a no-op logger when the file cannot
// be opened. Logging failures never block the game.
func OpenOrNop(path string) *zap.Logger {
	logger, err := Open(path)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
