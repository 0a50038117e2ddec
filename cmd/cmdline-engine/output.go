package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/terminal"
)

// palette colors verdicts when the output supports it.
type palette struct {
	enabled bool
	status  map[enginetypes.Status]*color.Color
	label   *color.Color
}

func newPalette(mode string, w io.Writer) *palette {
	caps := terminal.New(terminal.Options{
		ForceColor: mode == "always",
		NoColor:    mode == "never",
	})
	f, _ := w.(*os.File)
	return newPaletteEnabled(caps.SupportsColor(f))
}

func newPaletteEnabled(enabled bool) *palette {
	p := &palette{
		enabled: enabled,
		status: map[enginetypes.Status]*color.Color{
			enginetypes.StatusPassed:        color.New(color.FgGreen, color.Bold),
			enginetypes.StatusFailed:        color.New(color.FgRed, color.Bold),
			enginetypes.StatusCaution:       color.New(color.FgYellow, color.Bold),
			enginetypes.StatusBlocked:       color.New(color.FgMagenta, color.Bold),
			enginetypes.StatusNotRun:        color.New(color.Faint),
			enginetypes.StatusNotApplicable: color.New(color.Faint),
		},
		label: color.New(color.FgCyan),
	}
	for _, c := range p.status {
		p.apply(c)
	}
	p.apply(p.label)
	return p
}

func (p *palette) apply(c *color.Color) {
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Status renders a status name in its verdict color.
func (p *palette) Status(s enginetypes.Status) string {
	c, ok := p.status[s]
	if !ok {
		return s.String()
	}
	return c.Sprint(s.String())
}

// Label renders a field label.
func (p *palette) Label(s string) string {
	return p.label.Sprint(s)
}
