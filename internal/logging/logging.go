// Package logging builds the slog logger shared by the CLI commands and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/sumz/models"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogName is the rotating log file the TUI writes when no file is configured.
const DefaultLogName = "sumz.log"

// Options selects where logs go and how verbose they are.
type Options struct {
	Quiet bool
	Debug bool
	// Interactive keeps logs off the terminal. Without a configured file
	// they go to DefaultFile instead of stderr.
	Interactive bool
	// File forces a rotating log file, overriding cfg.File.
	File string
	// DefaultFile is the interactive fallback. Empty means DefaultPath.
	DefaultFile string
}

// DefaultPath returns the log path next to the running binary.
func DefaultPath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultLogName), nil
}

// New returns a JSON slog logger and a closer for any file it opened.
func New(cfg models.LogConfig, opts Options) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Level)
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	file := cfg.File
	if opts.File != "" {
		file = opts.File
	}
	if file == "" && opts.Interactive {
		file = opts.DefaultFile
		if file == "" {
			// Logs are dropped if the binary cannot be located.
			file, _ = DefaultPath()
		}
	}
	switch {
	case file != "":
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		w, closer = rotator, rotator
	case !opts.Interactive:
		w = os.Stderr
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer
}

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
