//go:build windows

package executor

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
)

// DefaultElevationCommand returns nil: elevation on Windows goes through the
// UAC prompt of Start-Process -Verb RunAs.
func DefaultElevationCommand() []string {
	return nil
}

func systemDirectory() string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32")
}

func quoteExecutable(executable string) string {
	return `"` + executable + `"`
}

// directInvocation passes the argument string verbatim as the process command line.
func directInvocation(executable, arguments, dir string) (Invocation, error) {
	cmdLine := quoteExecutable(executable)
	if arguments != "" {
		cmdLine += " " + arguments
	}
	return Invocation{Path: executable, CmdLine: cmdLine, Dir: dir}, nil
}

// elevatedInvocation wraps the launch in PowerShell's Start-Process -Verb RunAs.
// With logPath set the target runs inside cmd.exe with stdout redirected to logPath.
// Without -PassThru, powershell.exe exits zero once the target has run and
// non-zero when the UAC prompt is declined or the target cannot start.
func elevatedInvocation(_ []string, executable, arguments, logPath string) (Invocation, error) {
	sysDir := systemDirectory()

	filePath := executable
	argList := arguments
	if logPath != "" {
		filePath = filepath.Join(sysDir, "cmd.exe")
		argList = `/C "` + quoteExecutable(executable) + " " + arguments + ` > "` + logPath + `""`
	}

	var script strings.Builder
	script.WriteString("$ErrorActionPreference = 'Stop'; ")
	script.WriteString("Start-Process -FilePath " + PowerShellQuote(filePath))
	if argList != "" {
		script.WriteString(" -ArgumentList " + PowerShellQuote(argList))
	}
	script.WriteString(" -WorkingDirectory " + PowerShellQuote(sysDir))
	script.WriteString(" -Verb RunAs -Wait")

	powershell := filepath.Join(sysDir, "WindowsPowerShell", "v1.0", "powershell.exe")
	return Invocation{
		Path: powershell,
		Args: []string{"-NoProfile", "-NonInteractive", "-EncodedCommand", encodePowerShell(script.String())},
		Dir:  sysDir,
	}, nil
}

// encodePowerShell encodes a script for -EncodedCommand as base64 of UTF-16LE.
func encodePowerShell(script string) string {
	units := utf16.Encode([]rune(script))
	buf := make([]byte, 0, len(units)*2)
	for _, u := range units {
		buf = append(buf, byte(u), byte(u>>8))
	}
	return base64.StdEncoding.EncodeToString(buf)
}
