// Package enginetypes defines the data model shared by the command-line
// automation engine: test invocation requests, classification rules, statuses
// and execution results.
package enginetypes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidStatus is returned when a status name or ordinal is not recognized.
var ErrInvalidStatus = errors.New("invalid test status")

// Status is the execution verdict reported to the host.
// The numeric values are the host's ordinals and are persisted in configuration.
type Status int

// Host status ordinals.
const (
	StatusFailed        Status = 1
	StatusPassed        Status = 2
	StatusNotRun        Status = 3
	StatusNotApplicable Status = 4
	StatusBlocked       Status = 5
	StatusCaution       Status = 6
)

var statusNames = map[Status]string{
	StatusFailed:        "Failed",
	StatusPassed:        "Passed",
	StatusNotRun:        "NotRun",
	StatusNotApplicable: "NotApplicable",
	StatusBlocked:       "Blocked",
	StatusCaution:       "Caution",
}

// Statuses returns every known status in ordinal order.
func Statuses() []Status {
	return []Status{StatusFailed, StatusPassed, StatusNotRun, StatusNotApplicable, StatusBlocked, StatusCaution}
}

// IsValid reports whether s is a known host status.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// String returns the host name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both names
// (case-insensitive) and ordinals are accepted.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a status name such as "Passed" or an ordinal such as "2".
func ParseStatus(value string) (Status, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		s := Status(n)
		if !s.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, n)
		}
		return s, nil
	}
	for status, name := range statusNames {
		if strings.EqualFold(name, value) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}
