// Command cmdline-engine runs command-line test tools on behalf of a test
// management host and reports a classified verdict.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine"
	"github.com/isseis/go-cmdline-engine/internal/engine/config"
	"github.com/isseis/go-cmdline-engine/internal/engine/expansion"
	"github.com/isseis/go-cmdline-engine/internal/engine/workdir"
	"github.com/isseis/go-cmdline-engine/internal/logging"
	"github.com/isseis/go-cmdline-engine/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type mainCmd struct {
	LogLevel    string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Console log level (${enum})"`
	LogDir      string `name:"log-dir" type:"path" placeholder:"DIR" help:"Write a JSON log file for this run into DIR"`
	MetricsFile string `name:"metrics-file" type:"path" placeholder:"FILE" help:"Write Prometheus metrics for this run to FILE"`
	ConfigFile  string `name:"config" short:"c" type:"path" default:"${configPath}" env:"CMDLINE_ENGINE_CONFIG" placeholder:"FILE" help:"Engine configuration file"`
	Color       string `name:"color" default:"auto" enum:"auto,always,never" help:"Colorize verdicts (${enum})"`

	Run      runCmd      `cmd:"" help:"Execute a test request"`
	Classify classifyCmd `cmd:"" help:"Show how output would be classified"`
	Config   configCmd   `cmd:"" help:"Inspect or edit the engine configuration"`
	Info     infoCmd     `cmd:"" help:"Show engine registration details"`
}

// app carries the per-run state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader

	logger     *slog.Logger
	runID      string
	configPath string
	appDataDir string
	recorder   metrics.Recorder
	colors     *palette
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) int {
	appDataDir := expansion.AppDataDir()

	var cmd mainCmd
	parser, err := kong.New(&cmd,
		kong.Name("cmdline-engine"),
		kong.Description("Launch command-line test tools and classify their output."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{
			"configPath": config.DefaultPath(workdir.DefaultDir(appDataDir)),
			"configKeys": strings.Join(config.Keys(), ","),
		},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "cmdline-engine: %v\n", err)
		return exitError
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%v", err)
		return exitUsage
	}

	runID := logging.GenerateRunID()
	level, err := logging.ParseLevel(cmd.LogLevel)
	if err != nil {
		logging.HandlePreExecutionError(stderr, &logging.PreExecutionError{
			Type:      logging.ErrorTypeRequiredArgumentMissing,
			Message:   "invalid --log-level",
			Component: "cli",
			RunID:     runID,
			Err:       err,
		})
		return exitError
	}

	logger, err := logging.Setup(logging.Config{
		Level:    level,
		Console:  stderr,
		LogDir:   cmd.LogDir,
		RunID:    runID,
		Hostname: common.GetHostname(),
	})
	if err != nil {
		logging.HandlePreExecutionError(stderr, &logging.PreExecutionError{
			Type:      logging.ErrorTypeLogSetup,
			Message:   "failed to set up logging",
			Component: "logging",
			RunID:     runID,
			Err:       err,
		})
		return exitError
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	registry := prometheus.NewRegistry()
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		stdin:      stdin,
		logger:     logger.Logger,
		runID:      runID,
		configPath: cmd.ConfigFile,
		appDataDir: appDataDir,
		recorder:   metrics.NewCollector(registry, engine.Version),
		colors:     newPalette(cmd.Color, stdout),
	}

	logger.Debug("Starting command", "command", kctx.Command(), "run_id", runID, "config", cmd.ConfigFile)
	runErr := kctx.Run(a)

	if cmd.MetricsFile != "" {
		if err := metrics.WriteTextfile(cmd.MetricsFile, registry); err != nil {
			logger.Error("Failed to write metrics", "path", cmd.MetricsFile, "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	if runErr == nil {
		return exitOK
	}

	var preErr *logging.PreExecutionError
	if errors.As(runErr, &preErr) {
		if preErr.RunID == "" {
			preErr.RunID = runID
		}
		logging.HandlePreExecutionError(stderr, preErr)
		return exitError
	}

	logger.Error("Command failed", "error", runErr, "run_id", runID)
	fmt.Fprintf(stderr, "Error: %s\n", logging.RedactString(runErr.Error()))
	return exitError
}
