package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType represents different types of pre-execution errors.
type ErrorType string

const (
	// ErrorTypeConfigLoad represents engine configuration load failures.
	ErrorTypeConfigLoad ErrorType = "config_load_failed"
	// ErrorTypeRequestLoad represents request file load failures.
	ErrorTypeRequestLoad ErrorType = "request_load_failed"
	// ErrorTypeLogSetup represents failures while opening log outputs.
	ErrorTypeLogSetup ErrorType = "log_setup_failed"
	// ErrorTypeRequiredArgumentMissing represents missing required argument errors.
	ErrorTypeRequiredArgumentMissing ErrorType = "required_argument_missing"
	// ErrorTypeSystemError represents system errors.
	ErrorTypeSystemError ErrorType = "system_error"
)

// PreExecutionError represents an error that occurs before the test tool is launched.
type PreExecutionError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error
}

// Error implements the error interface.
func (e *PreExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s, run_id: %s)", e.Type, e.Message, e.Err, e.Component, e.RunID)
	}
	return fmt.Sprintf("%s: %s (component: %s, run_id: %s)", e.Type, e.Message, e.Component, e.RunID)
}

// Unwrap implements error wrapping for errors.Unwrap.
func (e *PreExecutionError) Unwrap() error {
	return e.Err
}

// HandlePreExecutionError reports err on w and through the default logger,
// followed by a one-line RUN_SUMMARY for scripts that scrape the output.
func HandlePreExecutionError(w io.Writer, err *PreExecutionError) {
	details := err.Message
	if err.Err != nil {
		details = fmt.Sprintf("%s: %v", err.Message, err.Err)
	}
	details = RedactString(details)

	// Single write so concurrent output cannot interleave the block
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err.Type)
	if err.Component != "" {
		fmt.Fprintf(&b, "  Component: %s\n", err.Component)
	}
	fmt.Fprintf(&b, "  Details: %s\n", details)
	if err.RunID != "" {
		fmt.Fprintf(&b, "  Run ID: %s\n", err.RunID)
	}
	fmt.Fprintf(&b, "RUN_SUMMARY run_id=%s exit_code=1 status=pre_execution_error\n", err.RunID)
	fmt.Fprint(w, b.String())

	slog.Error("Pre-execution error occurred",
		"error_type", string(err.Type),
		"error_message", details,
		"component", err.Component,
		"run_id", err.RunID)
}
