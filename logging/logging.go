// Package logging builds the process logger handed to components that
// need one. There is no implicit global configuration: callers either
// construct a logger explicitly with New or share the initialize-once
// Default handle.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Conf controls where log output goes.
type Conf struct {
	Dir     string `json:"dir"`     // log directory; empty = no file output
	Console bool   `json:"console"` // human-readable output on stderr
	Level   string `json:"level"`   // zerolog level name; empty = info
}

// New constructs a logger from conf. With a Dir set, entries are
// appended to runtime_<date>.log inside it (one file per day of
// process start; no in-process rotation).
func New(conf Conf) (zerolog.Logger, error) {
	var writers []io.Writer
	if conf.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if conf.Dir != "" {
		if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("create log dir: %w", err)
		}
		name := fmt.Sprintf("runtime_%s.log", time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(filepath.Join(conf.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	level := zerolog.InfoLevel
	if conf.Level != "" {
		parsed, err := zerolog.ParseLevel(conf.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

var (
	defaultOnce   sync.Once
	defaultLogger zerolog.Logger
)

// Default returns the process-wide logger, constructed once on first
// use with console output only.
func Default() zerolog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().
			Timestamp().
			Logger()
	})
	return defaultLogger
}
