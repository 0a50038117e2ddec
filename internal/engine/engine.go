package engine

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine/config"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/executor"
	"github.com/isseis/go-cmdline-engine/internal/engine/expansion"
	"github.com/isseis/go-cmdline-engine/internal/engine/resolver"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/isseis/go-cmdline-engine/internal/engine/workdir"
	"github.com/isseis/go-cmdline-engine/internal/logging"
	"github.com/isseis/go-cmdline-engine/internal/metrics"
)

// Registration metadata reported to the host.
const (
	Name    = "Command-Line Automation Engine"
	Token   = "CommandLine"
	Version = "4.0.5"
	Author  = "Inflectra Corporation"
)

// ID is the engine's fixed unique identifier.
var ID = uuid.MustParse("95589ebc-e859-459c-904b-6524870da4be")

// AutomationEngine is the host-facing engine contract.
type AutomationEngine interface {
	Execute(req *enginetypes.TestInvocationRequest, projectID int) (*enginetypes.ExecutionResult, error)
	Name() string
	Token() string
	Version() string
	ID() uuid.UUID
	Author() string
	Status() State
}

// ConfigSource supplies the persisted configuration for each execution.
type ConfigSource interface {
	Load() (*config.EngineConfig, error)
}

// Engine implements AutomationEngine.
type Engine struct {
	configs     ConfigSource
	fs          common.FileSystem
	appDataDir  string
	runnerOpts  []executor.Option
	events      logging.EventLog
	recorder    metrics.Recorder
	logger      *slog.Logger
	now         func() time.Time
	status      State
	lastWorkDir string
}

var _ AutomationEngine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithFileSystem sets the file system used for working files.
func WithFileSystem(fs common.FileSystem) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithAppDataDir overrides the application data directory holding RemoteLaunch.
func WithAppDataDir(dir string) Option {
	return func(e *Engine) {
		e.appDataDir = dir
	}
}

// WithRunnerOptions adds options for the process runner.
func WithRunnerOptions(opts ...executor.Option) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, opts...)
	}
}

// WithEngineEventLog sets the host event sink.
func WithEngineEventLog(events logging.EventLog) Option {
	return func(e *Engine) {
		e.events = events
	}
}

// WithEngineRecorder sets the metrics recorder.
func WithEngineRecorder(recorder metrics.Recorder) Option {
	return func(e *Engine) {
		e.recorder = recorder
	}
}

// WithLogger sets the logger used by the process runner.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEngineClock overrides time.Now.
func WithEngineClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine reading its configuration from configs.
func New(configs ConfigSource, opts ...Option) *Engine {
	e := &Engine{
		configs:  configs,
		fs:       common.NewDefaultFileSystem(),
		recorder: metrics.Nop{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.events == nil {
		e.events = logging.NewEventLog(e.logger, Token)
	}
	if e.appDataDir == "" {
		e.appDataDir = expansion.AppDataDir()
	}
	return e
}

// Name returns the display name.
func (e *Engine) Name() string { return Name }

// Token returns the engine token.
func (e *Engine) Token() string { return Token }

// Version returns the engine version.
func (e *Engine) Version() string { return Version }

// ID returns the engine identifier.
func (e *Engine) ID() uuid.UUID { return ID }

// Author returns the engine author.
func (e *Engine) Author() string { return Author }

// Status returns the state left by the last execution.
func (e *Engine) Status() State { return e.status }

// WorkDir returns the working directory used by the last execution.
func (e *Engine) WorkDir() string { return e.lastWorkDir }

// Execute loads the configuration and runs a copy of req with the configured
// logging and elevation settings applied. The caller's request is not modified.
func (e *Engine) Execute(req *enginetypes.TestInvocationRequest, projectID int) (*enginetypes.ExecutionResult, error) {
	e.status = StateOK

	cfg, err := e.configs.Load()
	if err != nil {
		e.events.LogEvent(fmt.Sprintf("%v (%s)", err, debug.Stack()), logging.SeverityError)
		e.recorder.RecordError(runerrors.Classify(err))
		e.status = StateError
		return nil, err
	}

	run := *req
	run.LogResults = cfg.LogResults
	run.Elevate = cfg.RunAsAdmin

	dir := cfg.WorkDir
	if dir == "" {
		dir = workdir.DefaultDir(e.appDataDir)
	}
	e.lastWorkDir = dir
	wd := workdir.NewManagerWithFS(dir, Token, e.fs)

	runnerOpts := append([]executor.Option{executor.WithLogger(e.logger)}, e.runnerOpts...)
	if len(cfg.ElevationCommand) > 0 {
		runnerOpts = append(runnerOpts, executor.WithElevationCommand(cfg.ElevationCommand...))
	}

	coord := NewCoordinator(
		resolver.New(cfg.SpecialFolders(), wd),
		executor.NewRunner(wd, runnerOpts...),
		WithEventLog(e.events),
		WithRecorder(e.recorder),
		WithClock(e.now),
		WithTrace(cfg.TraceLogging),
	)

	result, err := coord.Execute(&run, projectID, cfg.Rules())
	e.status = coord.Status()
	return result, err
}
