// Package logging builds the process-wide zap logger: a console sink with
// optional color, plus an optional plain-text file sink.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stagehand/setcutter/internal/config"
	"github.com/stagehand/setcutter/internal/term"
)

// New configures term colors from cfg and returns a sugared logger writing
// to stdout (colored when the terminal allows) and, when cfg.LogFile is set,
// to the file as well (always plain). The returned close func flushes and
// closes the file sink; call it when done.
func New(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	term.Configure(cfg.ColorMode)

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(term.Enabled()), zapcore.Lock(os.Stdout), level),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		file, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder(false), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return logger.Sugar(), closeFn, nil
}

// consoleEncoder returns the shared human-readable encoder. The file sink
// uses the same layout with colors off so log files stay grep-friendly.
func consoleEncoder(color bool) zapcore.Encoder {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	enc.CallerKey = zapcore.OmitKey
	return zapcore.NewConsoleEncoder(enc)
}
