// README: Builds the process logger from explicit console/file toggles.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"wandersmart/internal/config"
)

// FileName is the log file created inside config.Logging.Dir.
const FileName = "wandersmart.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a JSON slog.Logger writing to stderr and/or the log file per cfg, and a closer
// for the file. The file rotates at cfg.MaxSizeMB keeping cfg.MaxBackups old copies.
// With both toggles off every record is discarded.
func New(cfg config.Logging) (*slog.Logger, io.Closer, error) {
	return newWithConsole(cfg, os.Stderr)
}

func newWithConsole(cfg config.Logging, console io.Writer) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Console {
		writers = append(writers, console)
	}
	if cfg.File {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f := fileWriter(cfg)
		writers = append(writers, f)
		closer = f
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, closer, nil
}

func fileWriter(cfg config.Logging) *lumberjack.Logger {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultLogMaxSizeMB
	}
	backups := cfg.MaxBackups
	if backups < 0 {
		backups = 0
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, FileName),
		MaxSize:    maxSize,
		MaxBackups: backups,
	}
}
