package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600

	// logSchemaVersion is written on every JSON log line.
	logSchemaVersion = 1
)

// Error definitions for the logging package.
var (
	ErrInvalidLevel = errors.New("invalid log level")
)

// GenerateRunID returns a new ULID identifying one CLI run.
func GenerateRunID() string {
	return ulid.Make().String()
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// Config holds logger setup options.
type Config struct {
	Level slog.Level
	// Console receives human-readable text output; defaults to os.Stderr.
	Console io.Writer
	// LogDir, when set, receives one JSON log file per run.
	LogDir   string
	RunID    string
	Hostname string
}

// Logger is a configured logger together with its per-run log file.
type Logger struct {
	*slog.Logger
	// FilePath is the JSON log file path, empty when file logging is off.
	FilePath string
	file     *os.File
}

// Close closes the JSON log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// LogFileName returns <hostname>_<timestamp>_<runID>.json.
func LogFileName(hostname string, ts time.Time, runID string) string {
	return fmt.Sprintf("%s_%s_%s.json", hostname, ts.UTC().Format("20060102T150405Z"), runID)
}

// Setup builds the logger: a text handler on the console plus an optional
// JSON file handler, both behind a RedactingHandler.
func Setup(cfg Config) (*Logger, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	hostname := cfg.Hostname
	if hostname == "" {
		hostname = "unknown-host"
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: cfg.Level}),
	}

	logger := &Logger{}
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, logDirPerm); err != nil {
			return nil, fmt.Errorf("cannot create log directory %s: %w", cfg.LogDir, err)
		}
		path := filepath.Join(cfg.LogDir, LogFileName(hostname, time.Now(), cfg.RunID))
		// #nosec G304 - the log directory is chosen by the operator
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, logFilePerm)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.file = f
		logger.FilePath = path

		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.Level}).
			WithAttrs([]slog.Attr{
				slog.String("hostname", hostname),
				slog.Int("pid", os.Getpid()),
				slog.Int("schema_version", logSchemaVersion),
				slog.String("run_id", cfg.RunID),
			}))
	}

	logger.Logger = slog.New(NewRedactingHandler(NewMultiHandler(handlers...)))
	return logger, nil
}
