package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stairtour/internal/config"
)

// newLogger builds the process logger.
//
// With a log path, JSON lines go to that file. Without one, the interactive
// tour logs nothing (it owns the terminal) and other commands log warnings
// and above to stderr in console format.
func newLogger(cfg config.LogConfig, interactive bool, stderr io.Writer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if cfg.Path != "" {
		zc := zap.NewProductionConfig()
		zc.Level = level
		zc.OutputPaths = []string{cfg.Path}
		zc.ErrorOutputPaths = []string{cfg.Path}
		logger, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to open log %s: %w", cfg.Path, err)
		}
		return logger, nil
	}

	if interactive {
		return zap.NewNop(), nil
	}

	if level.Level() < zapcore.WarnLevel {
		level.SetLevel(zapcore.WarnLevel)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(stderr), level)
	return zap.New(core), nil
}
