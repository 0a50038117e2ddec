// Package engine runs one test invocation end to end: resolve the command,
// launch the tool, classify its output and build the result for the host.
//
// A Coordinator or Engine runs a single execution at a time. The working
// directory files have fixed names, so concurrent calls on the same
// directory must be serialized by the caller.
package engine

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine/classifier"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/isseis/go-cmdline-engine/internal/logging"
	"github.com/isseis/go-cmdline-engine/internal/metrics"
)

// MaxRunnerFieldLength is the host limit for RunnerMessage and RunnerTestName.
const MaxRunnerFieldLength = 50

// State is the engine status reported to the host.
type State int

// Engine states.
const (
	StateOK State = iota
	StateError
)

func (s State) String() string {
	if s == StateError {
		return "Error"
	}
	return "OK"
}

// CommandResolver builds the invocation for a request.
type CommandResolver interface {
	Resolve(req *enginetypes.TestInvocationRequest, projectID int) (*enginetypes.ResolvedCommand, error)
}

// ProcessRunner launches the resolved command and returns its output.
type ProcessRunner interface {
	Run(executable, arguments string, elevate, logResults bool) (string, error)
}

// Coordinator sequences one execution.
type Coordinator struct {
	resolver   CommandResolver
	runner     ProcessRunner
	events     logging.EventLog
	recorder   metrics.Recorder
	now        func() time.Time
	runnerName string
	trace      bool
	state      State
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithEventLog sets the host event sink.
func WithEventLog(events logging.EventLog) CoordinatorOption {
	return func(c *Coordinator) {
		c.events = events
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) CoordinatorOption {
	return func(c *Coordinator) {
		c.recorder = recorder
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithDefaultRunnerName sets the runner name used when the request has none.
func WithDefaultRunnerName(name string) CoordinatorOption {
	return func(c *Coordinator) {
		c.runnerName = name
	}
}

// WithTrace logs an info event when an execution starts.
func WithTrace(enabled bool) CoordinatorOption {
	return func(c *Coordinator) {
		c.trace = enabled
	}
}

// NewCoordinator creates a coordinator.
func NewCoordinator(resolver CommandResolver, runner ProcessRunner, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		resolver:   resolver,
		runner:     runner,
		events:     logging.NewEventLog(nil, Token),
		recorder:   metrics.Nop{},
		now:        time.Now,
		runnerName: Name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the state left by the last execution.
func (c *Coordinator) Status() State {
	return c.state
}

// Execute runs req. Rules are compiled before anything is resolved or launched.
// Errors are reported to the event log with a stack trace, leave the
// coordinator in StateError and are returned unchanged.
func (c *Coordinator) Execute(req *enginetypes.TestInvocationRequest, projectID int, rules enginetypes.ClassificationRules) (*enginetypes.ExecutionResult, error) {
	c.state = StateOK

	result, err := c.execute(req, projectID, rules)
	if err != nil {
		c.events.LogEvent(fmt.Sprintf("%v (%s)", err, debug.Stack()), logging.SeverityError)
		c.recorder.RecordError(runerrors.Classify(err))
		c.state = StateError
		return nil, err
	}
	return result, nil
}

func (c *Coordinator) execute(req *enginetypes.TestInvocationRequest, projectID int, rules enginetypes.ClassificationRules) (*enginetypes.ExecutionResult, error) {
	if c.trace {
		c.events.LogEvent("Starting test execution", logging.SeverityInfo)
	}

	cls, err := classifier.Compile(rules)
	if err != nil {
		return nil, err
	}

	cmd, err := c.resolver.Resolve(req, projectID)
	if err != nil {
		return nil, err
	}

	start := c.now()
	output, err := c.runner.Run(cmd.Executable, cmd.Arguments, req.Elevate, req.LogResults)
	if err != nil {
		return nil, err
	}
	end := c.now()

	result := &enginetypes.ExecutionResult{
		StartTime: start,
		EndTime:   end,
	}

	// Tools that report results to the host themselves run with logging off
	if !req.LogResults {
		result.Status = enginetypes.StatusNotRun
		c.recorder.RecordExecution(result.Status, end.Sub(start), 0)
		return result, nil
	}

	result.RunnerName = req.RunnerName
	if result.RunnerName == "" {
		result.RunnerName = c.runnerName
	}
	result.RunnerTestName = common.Truncate(cmd.TestName, MaxRunnerFieldLength)
	result.Status = cls.Classify(output)
	result.RunnerMessage = common.Truncate(output, MaxRunnerFieldLength)
	result.RawOutput = output
	result.Format = enginetypes.FormatPlainText
	if result.Status != enginetypes.StatusPassed {
		result.AssertCount = 1
	}

	c.recorder.RecordExecution(result.Status, end.Sub(start), len(output))
	return result, nil
}
