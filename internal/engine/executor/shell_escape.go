package executor

import (
	"strings"
)

// ShellEscape quotes s for a POSIX shell.
// Returns s unchanged when it only contains safe characters.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}

	needsQuoting := false
	for _, r := range s {
		if !isSafeChar(r) {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return s
	}

	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// isSafeChar checks if a character is safe to use in shell without quoting.
func isSafeChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_' || r == '.' || r == '/' || r == ':' || r == '@'
}

// PowerShellQuote returns s as a single-quoted PowerShell string literal.
func PowerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatInvocationForLog renders an invocation for log output.
func FormatInvocationForLog(inv Invocation) string {
	if inv.CmdLine != "" {
		return inv.CmdLine
	}
	parts := make([]string, 1+len(inv.Args))
	parts[0] = ShellEscape(inv.Path)
	for i, arg := range inv.Args {
		parts[i+1] = ShellEscape(arg)
	}
	return strings.Join(parts, " ")
}
