// Package executor launches the external command-line tool and captures its
// standard output.
//
// Two modes exist. Direct mode spawns the tool with stdout redirected into
// memory. Elevated mode requests administrative privileges, which rules out
// stdout redirection, so the tool runs inside the system shell with its
// output redirected to a log file in the working directory; the log is read
// back and deleted afterwards.
//
// Launches block until the process exits. There is no timeout: a tool that
// never exits blocks Run forever.
//
// A tool that runs and exits non-zero is not a launch failure. In elevated
// mode a non-zero exit of the elevation wrapper is: it means privileges were
// refused or the target could not be started.
package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/isseis/go-cmdline-engine/internal/engine/workdir"
)

// Mode names used in log output.
const (
	ModeDirect   = "direct"
	ModeElevated = "elevated"
)

// ErrElevatedLaunchFailed is wrapped in the LaunchError returned when the
// elevation wrapper exits non-zero.
var ErrElevatedLaunchFailed = errors.New("elevated launch failed")

// Runner runs external processes.
type Runner struct {
	workdir   *workdir.Manager
	starter   ProcessStarter
	elevation []string
	stdin     io.Reader
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithStarter sets the process starter. Tests use a fake.
func WithStarter(starter ProcessStarter) Option {
	return func(r *Runner) {
		r.starter = starter
	}
}

// WithElevationCommand sets the command prefix used for elevated launches on
// POSIX systems, e.g. "sudo" or "pkexec". An empty prefix launches without
// elevation. Ignored on Windows.
func WithElevationCommand(prefix ...string) Option {
	return func(r *Runner) {
		r.elevation = prefix
	}
}

// WithStdin sets the standard input of launched processes. Elevation prompts read from it.
func WithStdin(stdin io.Reader) Option {
	return func(r *Runner) {
		r.stdin = stdin
	}
}

// WithStderr sets where the standard error of launched processes is written.
func WithStderr(stderr io.Writer) Option {
	return func(r *Runner) {
		r.stderr = stderr
	}
}

// WithEnvLookup sets the environment lookup used to expand the executable path.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(r *Runner) {
		r.lookupEnv = lookup
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner whose elevated-run log lives in wd.
func NewRunner(wd *workdir.Manager, opts ...Option) *Runner {
	r := &Runner{
		workdir:   wd,
		starter:   ExecStarter{},
		elevation: DefaultElevationCommand(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run launches executable with arguments and returns the captured standard output.
//
// In direct mode the output is always captured. In elevated mode output is only
// captured when logResults is set; otherwise the process is launched without
// any redirection and the empty string is returned.
func (r *Runner) Run(executable, arguments string, elevate, logResults bool) (string, error) {
	executable = ExpandEnv(executable, r.lookupEnv)

	if elevate {
		return r.runElevated(executable, arguments, logResults)
	}
	return r.runDirect(executable, arguments)
}

func (r *Runner) runDirect(executable, arguments string) (string, error) {
	dir := commandDir(executable)
	launchErr := func(err error) error {
		return &runerrors.LaunchError{
			Executable: filepath.Base(executable),
			Dir:        dir,
			Arguments:  arguments,
			Err:        err,
		}
	}

	path, err := absCommandPath(executable)
	if err != nil {
		return "", launchErr(err)
	}
	inv, err := directInvocation(path, arguments, dir)
	if err != nil {
		return "", launchErr(err)
	}

	var stdout bytes.Buffer
	inv.Stdout = &stdout
	inv.Stderr = r.stderr
	inv.Stdin = r.stdin

	if _, err := r.start(ModeDirect, inv); err != nil {
		return "", launchErr(err)
	}
	return stdout.String(), nil
}

func (r *Runner) runElevated(executable, arguments string, logResults bool) (string, error) {
	launchErr := func(err error) error {
		return &runerrors.LaunchError{
			Executable: filepath.Base(executable),
			Dir:        commandDir(executable),
			Arguments:  arguments,
			Err:        err,
		}
	}

	if !logResults {
		inv, err := elevatedInvocation(r.elevation, executable, arguments, "")
		if err != nil {
			return "", launchErr(err)
		}
		inv.Stdin = r.stdin
		inv.Stderr = r.stderr
		if err := r.startElevated(inv); err != nil {
			return "", launchErr(err)
		}
		return "", nil
	}

	if err := r.workdir.Ensure(); err != nil {
		return "", launchErr(err)
	}
	logPath := r.workdir.OutputLogPath()

	inv, err := elevatedInvocation(r.elevation, executable, arguments, logPath)
	if err != nil {
		return "", launchErr(err)
	}
	inv.Stdin = r.stdin
	inv.Stderr = r.stderr
	if err := r.startElevated(inv); err != nil {
		return "", launchErr(err)
	}

	output, found, err := r.workdir.ReadOutputLog()
	if err != nil {
		return "", launchErr(err)
	}
	if !found {
		r.logger.Warn("Elevated command produced no output log", "path", logPath)
		return "", nil
	}

	if err := r.workdir.RemoveOutputLog(); err != nil {
		return "", &runerrors.LogCleanupError{Path: logPath, Err: err}
	}
	return output, nil
}

// startElevated runs an elevated invocation. The wrapper exits zero once the
// target has run, whatever the target's own status.
func (r *Runner) startElevated(inv Invocation) error {
	exitCode, err := r.start(ModeElevated, inv)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return fmt.Errorf("%w: exit status %d", ErrElevatedLaunchFailed, exitCode)
	}
	return nil
}

func (r *Runner) start(mode string, inv Invocation) (int, error) {
	r.logger.Debug("Launching command",
		"mode", mode,
		"command", FormatInvocationForLog(inv),
		"dir", inv.Dir)

	exitCode, err := r.starter.Run(inv)
	if err != nil {
		return exitCode, err
	}

	attrs := []any{"mode", mode, "exit_code", exitCode}
	if buf, ok := inv.Stdout.(*bytes.Buffer); ok {
		attrs = append(attrs, "output_size", humanize.Bytes(uint64(buf.Len())))
	}
	r.logger.Debug("Command exited", attrs...)
	return exitCode, nil
}

// commandDir returns the directory containing executable, or "" when the
// executable is a bare name resolved through PATH.
func commandDir(executable string) string {
	if executable == "" || filepath.Base(executable) == executable {
		return ""
	}
	return filepath.Dir(executable)
}

// absCommandPath makes a relative path with a directory component absolute so
// that it does not get resolved against the child's working directory.
func absCommandPath(executable string) (string, error) {
	if commandDir(executable) == "" || filepath.IsAbs(executable) {
		return executable, nil
	}
	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", fmt.Errorf("failed to resolve command path: %w", err)
	}
	return abs, nil
}
