// Package terminal decides whether CLI output goes to an interactive
// terminal and whether verdicts may be colored.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars are set by common CI systems.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
	"TF_BUILD",
	"TEAMCITY_VERSION",
}

// colorTerminals are TERM values (or prefixes before '-') known to render ANSI colors.
var colorTerminals = []string{
	"xterm", "screen", "tmux", "rxvt", "vt100", "ansi", "linux", "cygwin", "putty", "alacritty",
}

// Options overrides environment detection.
type Options struct {
	ForceColor bool
	NoColor    bool

	// LookupEnv and IsTerminal default to os.LookupEnv and term.IsTerminal.
	LookupEnv  func(string) (string, bool)
	IsTerminal func(fd int) bool
}

// Capabilities reports what the output terminal supports.
type Capabilities struct {
	opts Options
}

// New creates Capabilities.
func New(opts Options) *Capabilities {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = term.IsTerminal
	}
	return &Capabilities{opts: opts}
}

// IsCIEnvironment reports whether a CI system is detected. CI=false, CI=0 and
// CI=no do not count.
func (c *Capabilities) IsCIEnvironment() bool {
	for _, name := range ciEnvVars {
		value, ok := c.opts.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		if name == "CI" {
			return isTruthy(value)
		}
		return true
	}
	return false
}

// IsInteractive reports whether f is a terminal outside CI.
func (c *Capabilities) IsInteractive(f *os.File) bool {
	if f == nil || c.IsCIEnvironment() {
		return false
	}
	return c.opts.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether colored output should be written to f.
// Precedence: Options, CLICOLOR_FORCE, NO_COLOR, then an interactive
// terminal with a known TERM.
func (c *Capabilities) SupportsColor(f *os.File) bool {
	switch {
	case c.opts.ForceColor:
		return true
	case c.opts.NoColor:
		return false
	}
	if v, ok := c.opts.LookupEnv("CLICOLOR_FORCE"); ok && isTruthy(v) {
		return true
	}
	if _, ok := c.opts.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !c.IsInteractive(f) {
		return false
	}
	termName, _ := c.opts.LookupEnv("TERM")
	return isColorTerm(termName)
}

func isColorTerm(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "dumb" {
		return false
	}
	for _, known := range colorTerminals {
		if name == known || strings.HasPrefix(name, known+"-") {
			return true
		}
	}
	return false
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
