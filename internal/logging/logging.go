// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Level is none, info or debug.
	Level string
	// File, when set, receives JSON lines (append mode).
	File string
	// Console writes human-readable lines to stderr. The TUI leaves it off.
	Console bool
}

func ParseLevel(s string) (zapcore.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return zapcore.InvalidLevel, false, nil
	case "info":
		return zapcore.InfoLevel, true, nil
	case "debug":
		return zapcore.DebugLevel, true, nil
	default:
		return zapcore.InvalidLevel, false, fmt.Errorf("invalid log level: %q (expected none|info|debug)", s)
	}
}

// New returns a logger and a cleanup func that syncs it and closes the file.
func New(opt Options) (*zap.Logger, func(), error) {
	lvl, enabled, err := ParseLevel(opt.Level)
	if err != nil {
		return nil, nil, err
	}
	nop := func() {}
	if !enabled {
		return zap.NewNop(), nop, nil
	}

	cores := make([]zapcore.Core, 0, 2)
	var file *os.File

	if opt.Console {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		ec.TimeKey = zapcore.OmitKey
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), lvl))
	}
	if p := strings.TrimSpace(opt.File); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		file, err = os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(ec), zapcore.AddSync(file), lvl))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nop, nil
	}

	log := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = log.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return log, cleanup, nil
}
