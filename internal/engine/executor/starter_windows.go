//go:build windows

package executor

import (
	"os/exec"
	"syscall"
)

func applyCmdLine(cmd *exec.Cmd, cmdLine string) {
	if cmdLine == "" {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: cmdLine}
}
