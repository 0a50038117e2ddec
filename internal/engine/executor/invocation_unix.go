//go:build !windows

package executor

import (
	"fmt"

	"github.com/buildkite/shellwords"
)

const (
	systemShell = "/bin/sh"
	// elevatedWorkDir is the working directory of elevated launches.
	elevatedWorkDir = "/"
)

// DefaultElevationCommand is the prefix used to run a command with administrative privileges.
func DefaultElevationCommand() []string {
	return []string{"sudo"}
}

// splitArguments splits an argument string with POSIX shell-word rules.
func splitArguments(arguments string) ([]string, error) {
	args, err := shellwords.SplitPosix(arguments)
	if err != nil {
		return nil, fmt.Errorf("invalid argument string: %w", err)
	}
	return args, nil
}

func directInvocation(executable, arguments, dir string) (Invocation, error) {
	args, err := splitArguments(arguments)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{Path: executable, Args: args, Dir: dir}, nil
}

// exitStatusTail ends the elevated shell script. It passes on the shell's
// "cannot execute" (126) and "not found" (127) statuses and exits zero for
// any other status of the target, so a non-zero exit of the whole launch
// means the elevation prefix or the shell failed.
const exitStatusTail = "\nrc=$?\nif [ \"$rc\" -eq 126 ] || [ \"$rc\" -eq 127 ]; then exit \"$rc\"; fi\nexit 0"

// elevatedInvocation builds the elevated launch. The target always runs
// inside the system shell under the elevation prefix. With logPath set its
// stdout is redirected to logPath.
func elevatedInvocation(elevation []string, executable, arguments, logPath string) (Invocation, error) {
	if _, err := splitArguments(arguments); err != nil {
		return Invocation{}, err
	}

	line := ShellEscape(executable)
	if arguments != "" {
		line += " " + arguments
	}
	if logPath != "" {
		line += " > " + ShellEscape(logPath)
	}
	target := []string{systemShell, "-c", line + exitStatusTail}

	argv := append(append([]string(nil), elevation...), target...)
	return Invocation{Path: argv[0], Args: argv[1:], Dir: elevatedWorkDir}, nil
}
