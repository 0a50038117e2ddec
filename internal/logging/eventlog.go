package logging

import (
	"context"
	"log/slog"
)

// Severity of a host event.
type Severity int

// Event severities.
const (
	SeverityInfo Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// EventLog is the host's logging collaborator.
type EventLog interface {
	LogEvent(message string, severity Severity)
}

// SlogEventLog writes host events to a slog.Logger.
type SlogEventLog struct {
	logger *slog.Logger
	source string
}

// NewEventLog returns an EventLog writing to logger; a nil logger means slog.Default().
func NewEventLog(logger *slog.Logger, source string) *SlogEventLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEventLog{logger: logger, source: source}
}

// LogEvent implements EventLog.
func (e *SlogEventLog) LogEvent(message string, severity Severity) {
	level := slog.LevelInfo
	if severity == SeverityError {
		level = slog.LevelError
	}
	e.logger.Log(context.Background(), level, message, "source", e.source)
}
