package enginetypes

import (
	"fmt"
	"time"
)

// SourceKind tells the engine how the test body is delivered.
type SourceKind int

const (
	// SourceReference means the locator is the full command line (path|arguments|parameter-mask).
	SourceReference SourceKind = iota
	// SourceEmbeddedScript means the test body is a script that is materialized to a file
	SourceEmbeddedScript
)

// String returns a string representation of SourceKind.
func (k SourceKind) String() string {
	switch k {
	case SourceReference:
		return "reference"
	case SourceEmbeddedScript:
		return "embedded_script"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is the test body of a request.
type Source struct {
	Kind SourceKind
	// Locator is the pipe-delimited string: executable path, arguments template and,
	// for references, an optional parameter mask.
	Locator string
	// Script is the embedded test script. Only used when Kind is SourceEmbeddedScript.
	Script []byte
}

// Parameter is a single test-run parameter.
type Parameter struct {
	Name  string
	Value string
}

// TestInvocationRequest is created by the host for one test execution and consumed once.
type TestInvocationRequest struct {
	TestCaseID int
	TestRunID  int
	TestSetID  *int
	ReleaseID  *int

	Source     Source
	Parameters []Parameter

	// RunnerName is the name the host shows for the runner; the engine name is used when empty.
	RunnerName string

	LogResults bool
	Elevate    bool
}

// ClassificationRules map captured output onto a status.
// Patterns are case-insensitive RE2 expressions; an empty pattern matches any output.
type ClassificationRules struct {
	Pass          string
	Caution       string
	Fail          string
	Blocked       string
	DefaultStatus Status
}

// ResultFormat describes how the raw output should be rendered by the host.
type ResultFormat string

// FormatPlainText is the only format produced by this engine.
const FormatPlainText ResultFormat = "PlainText"

// ExecutionResult is the record handed back to the host.
type ExecutionResult struct {
	Status         Status
	StartTime      time.Time
	EndTime        time.Time
	RunnerName     string
	RunnerTestName string
	RunnerMessage  string
	RawOutput      string
	AssertCount    int
	Format         ResultFormat
}

// ResolvedCommand is the concrete invocation built from a request.
type ResolvedCommand struct {
	Executable string
	Arguments  string
	TestName   string
	// TempFile is the materialized script path, empty for references.
	TempFile string
}
