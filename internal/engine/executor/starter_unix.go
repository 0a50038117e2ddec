//go:build !windows

package executor

import "os/exec"

// applyCmdLine is a no-op: POSIX processes always receive an argv vector.
func applyCmdLine(_ *exec.Cmd, _ string) {}
