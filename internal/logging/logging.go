// Package logging builds the zap logger used across helpdesk.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexander-akhmetov/helpdesk/internal/debug"
)

// Config selects the level and destination of the log.
type Config struct {
	Level string
	File  string
}

// New creates a JSON zap.Logger writing to cfg.File. The terminal belongs to
// the TUI, so nothing is written to stdout. An unknown level falls back to
// info; HELPDESK_DEBUG=1 forces debug.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	if debug.Enabled() {
		level = zapcore.DebugLevel
	}

	if cfg.File == "" {
		return nil, errors.New("log file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
			TimeKey:    "ts",
			NameKey:    "logger",
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(l.String())
			},
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{cfg.File},
		ErrorOutputPaths: []string{cfg.File},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
