package executor

import (
	"errors"
	"io"
	"os/exec"
)

// ExitCodeUnknown is reported when the process never produced an exit status.
const ExitCodeUnknown = -1

// Invocation is a fully prepared process launch.
type Invocation struct {
	Path string
	Args []string
	// CmdLine, when set, is passed verbatim as the process command line on
	// platforms that support it (Windows). Args are ignored there.
	CmdLine string
	Dir     string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessStarter starts a process and blocks until it exits.
// A process that runs and exits with a non-zero code is not an error; only a
// failure to start or wait for the process is.
type ProcessStarter interface {
	Run(inv Invocation) (exitCode int, err error)
}

// ExecStarter implements ProcessStarter with os/exec.
type ExecStarter struct{}

// Run implements ProcessStarter.
func (ExecStarter) Run(inv Invocation) (int, error) {
	// #nosec G204 - the command line is configured by the test author on purpose
	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	applyCmdLine(cmd, inv.CmdLine)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return ExitCodeUnknown, err
	}
	return cmd.ProcessState.ExitCode(), nil
}
