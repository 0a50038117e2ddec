// Package runerrors defines the error taxonomy of the command-line engine.
// Callers inspect errors with errors.Is and errors.As; Classify maps any
// error onto a stable Kind used for log fields and metric labels.
package runerrors

import (
	"errors"
	"fmt"
)

// ErrEmptyScript is returned when an embedded-script request carries no script body.
var ErrEmptyScript = errors.New("the provided test script is empty, aborting test execution")

// Kind is a stable label for an error category.
type Kind string

// Error kinds.
const (
	KindEmptyScript    Kind = "empty_script"
	KindInvalidPattern Kind = "invalid_pattern"
	KindLaunch         Kind = "launch"
	KindLogCleanup     Kind = "log_cleanup"
	KindConfig         Kind = "config"
	KindUnknown        Kind = "unknown"
)

// InvalidPatternError reports a classification rule whose pattern does not compile.
type InvalidPatternError struct {
	Rule    string
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Rule, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// LaunchError wraps any failure to start or wait for the external process.
type LaunchError struct {
	Executable string
	Dir        string
	Arguments  string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("unable to launch command-line tool '%s' in directory '%s' with arguments '%s' (%v)",
		e.Executable, e.Dir, e.Arguments, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// LogCleanupError reports that the transient elevated-run output file could not be deleted.
type LogCleanupError struct {
	Path string
	Err  error
}

func (e *LogCleanupError) Error() string {
	return fmt.Sprintf("unable to delete output log file '%s': %v", e.Path, e.Err)
}

func (e *LogCleanupError) Unwrap() error {
	return e.Err
}

// ConfigError reports persisted configuration that cannot be read or is invalid.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid engine configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid engine configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Classify returns the Kind of err. Nested errors are unwrapped, and the most
// specific match wins: an invalid pattern inside a configuration error is
// reported as KindInvalidPattern.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}

	var (
		patternErr *InvalidPatternError
		launchErr  *LaunchError
		cleanupErr *LogCleanupError
		configErr  *ConfigError
	)
	switch {
	case errors.Is(err, ErrEmptyScript):
		return KindEmptyScript
	case errors.As(err, &patternErr):
		return KindInvalidPattern
	case errors.As(err, &cleanupErr):
		return KindLogCleanup
	case errors.As(err, &launchErr):
		return KindLaunch
	case errors.As(err, &configErr):
		return KindConfig
	default:
		return KindUnknown
	}
}
