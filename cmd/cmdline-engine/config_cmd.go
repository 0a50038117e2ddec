package main

import (
	"fmt"

	"github.com/isseis/go-cmdline-engine/internal/engine/config"
)

type configCmd struct {
	Show configShowCmd `cmd:"" help:"Print the effective configuration"`
	Init configInitCmd `cmd:"" help:"Write the default configuration file"`
	Set  configSetCmd  `cmd:"" help:"Change one configuration value"`
	Path configPathCmd `cmd:"" help:"Print the configuration file path"`
}

type configShowCmd struct{}

func (*configShowCmd) Run(a *app) error {
	loader := config.NewLoader(a.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	exists, err := loader.Exists()
	if err != nil {
		return err
	}

	content, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(a.stdout, "# %s\n", loader.Path())
	} else {
		fmt.Fprintf(a.stdout, "# %s (not saved, showing defaults)\n", loader.Path())
	}
	_, err = a.stdout.Write(content)
	return err
}

type configInitCmd struct {
	Force bool `name:"force" short:"f" help:"Overwrite an existing configuration file"`
}

func (cmd *configInitCmd) Run(a *app) error {
	loader := config.NewLoader(a.configPath)
	exists, err := loader.Exists()
	if err != nil {
		return err
	}
	if exists && !cmd.Force {
		return fmt.Errorf("%s already exists; use --force to overwrite it", loader.Path())
	}
	if err := loader.Save(config.Default()); err != nil {
		return err
	}
	a.logger.Info("Configuration initialized", "path", loader.Path())
	fmt.Fprintf(a.stdout, "Wrote %s\n", loader.Path())
	return nil
}

type configSetCmd struct {
	Key   string `arg:"" enum:"${configKeys}" help:"Configuration key (${enum})"`
	Value string `arg:"" help:"New value"`
}

func (cmd *configSetCmd) Run(a *app) error {
	loader := config.NewLoader(a.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return err
	}
	if err := loader.Save(cfg); err != nil {
		return err
	}
	a.logger.Info("Configuration updated", "path", loader.Path(), "setting", cmd.Key)
	fmt.Fprintf(a.stdout, "Set %s in %s\n", cmd.Key, loader.Path())
	return nil
}

type configPathCmd struct{}

func (*configPathCmd) Run(a *app) error {
	_, err := fmt.Fprintln(a.stdout, a.configPath)
	return err
}
