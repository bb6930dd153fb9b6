// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Level         string // debug, info, warn, error
	Format        string // json, pretty
	FileEnabled   bool
	FilePath      string // logs directory
	RotationSize  int    // MB
	RetentionDays int
}

// Init installs the global logger. With files enabled, everything goes to
// sentinel.log and errors are also copied to error.log.
func Init(cfg Config) error {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if cfg.Format == "pretty" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		writers = append(writers, os.Stderr)
	}

	if cfg.FileEnabled {
		if err := os.MkdirAll(cfg.FilePath, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers,
			rotating(filepath.Join(cfg.FilePath, "sentinel.log"), cfg),
			&minLevelWriter{w: rotating(filepath.Join(cfg.FilePath, "error.log"), cfg), min: zerolog.ErrorLevel},
		)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", "optionsentinel").
		Logger()

	log.Debug().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Bool("file_enabled", cfg.FileEnabled).
		Msg("logger initialized")
	return nil
}

func rotating(path string, cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.RotationSize,
		MaxAge:     cfg.RetentionDays,
		MaxBackups: 10,
		Compress:   true,
	}
}

// minLevelWriter drops events below min.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m *minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m *minLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}
