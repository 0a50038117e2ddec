package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/isseis/go-cmdline-engine/internal/engine/classifier"
	"github.com/isseis/go-cmdline-engine/internal/engine/config"
	"github.com/isseis/go-cmdline-engine/internal/logging"
)

type classifyCmd struct {
	Text []string `arg:"" optional:"" help:"Sample tool output; read from standard input when omitted"`
}

func (cmd *classifyCmd) Run(a *app) error {
	cfg, err := config.NewLoader(a.configPath).Load()
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeConfigLoad,
			Message:   "failed to load engine configuration",
			Component: "config",
			Err:       err,
		}
	}

	cls, err := classifier.Compile(cfg.Rules())
	if err != nil {
		return err
	}

	output := strings.Join(cmd.Text, " ")
	if len(cmd.Text) == 0 {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		output = string(data)
	}

	matches, status := cls.Explain(output)
	p := a.colors
	if len(matches) == 0 {
		fmt.Fprintf(a.stdout, "No rule matched; default status %s applies\n", p.Status(cls.DefaultStatus()))
	}
	for _, m := range matches {
		fmt.Fprintf(a.stdout, "%-8s %-8s %q\n", m.Rule, m.Status, m.Text)
	}
	fmt.Fprintf(a.stdout, "%s %s\n", p.Label("Status:"), p.Status(status))
	return nil
}
