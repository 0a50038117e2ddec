package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/isseis/go-cmdline-engine/internal/engine"
	"github.com/isseis/go-cmdline-engine/internal/engine/workdir"
)

type infoCmd struct{}

func (*infoCmd) Run(a *app) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"Name", engine.Name},
		{"Token", engine.Token},
		{"Version", engine.Version},
		{"Author", engine.Author},
		{"ID", engine.ID.String()},
		{"Config", a.configPath},
		{"Work dir", workdir.DefaultDir(a.appDataDir)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", a.colors.Label(row[0]+":"), row[1])
	}
	return tw.Flush()
}
