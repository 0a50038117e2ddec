package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine"
	"github.com/isseis/go-cmdline-engine/internal/engine/config"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/executor"
	"github.com/isseis/go-cmdline-engine/internal/logging"
)

type runCmd struct {
	Request string `name:"request" short:"r" required:"" type:"path" placeholder:"FILE" help:"Request file (.toml, .yaml or .yml)"`
	Project int    `name:"project" short:"p" placeholder:"ID" help:"Project ID; overrides project_id from the request file"`
	JSON    bool   `name:"json" help:"Print the result as JSON"`
	Quiet   bool   `name:"quiet" short:"q" help:"Do not print the captured tool output"`
}

// resultView is the JSON form of an execution result.
type resultView struct {
	RunID          string                   `json:"run_id"`
	Status         enginetypes.Status       `json:"status"`
	StartTime      time.Time                `json:"start_time"`
	EndTime        time.Time                `json:"end_time"`
	RunnerName     string                   `json:"runner_name,omitempty"`
	RunnerTestName string                   `json:"runner_test_name,omitempty"`
	RunnerMessage  string                   `json:"runner_message,omitempty"`
	RawOutput      string                   `json:"raw_output,omitempty"`
	AssertCount    int                      `json:"assert_count"`
	Format         enginetypes.ResultFormat `json:"format,omitempty"`
}

func (cmd *runCmd) Run(a *app) error {
	loader := config.NewLoader(a.configPath)
	if _, err := loader.Load(); err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeConfigLoad,
			Message:   "failed to load engine configuration",
			Component: "config",
			Err:       err,
		}
	}

	rf, req, err := loader.LoadRequest(cmd.Request)
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeRequestLoad,
			Message:   "failed to load request file",
			Component: "request",
			Err:       err,
		}
	}
	projectID := rf.ProjectID
	if cmd.Project != 0 {
		projectID = cmd.Project
	}

	eng := engine.New(loader,
		engine.WithAppDataDir(a.appDataDir),
		engine.WithLogger(a.logger),
		engine.WithEngineRecorder(a.recorder),
		engine.WithRunnerOptions(executor.WithStdin(a.stdin), executor.WithStderr(a.stderr)),
	)

	a.logger.Info("Executing test",
		"project_id", projectID,
		"test_case_id", req.TestCaseID,
		"test_run_id", req.TestRunID,
		"source", req.Source.Kind.String())

	result, err := eng.Execute(req, projectID)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	a.logger.Info("Test finished",
		"status", result.Status.String(),
		"duration", result.EndTime.Sub(result.StartTime).String(),
		"output_size", humanize.Bytes(uint64(len(result.RawOutput))))

	if cmd.JSON {
		return cmd.printJSON(a, result)
	}
	cmd.printText(a, result)
	return nil
}

func (cmd *runCmd) printJSON(a *app, result *enginetypes.ExecutionResult) error {
	view := resultView{
		RunID:          a.runID,
		Status:         result.Status,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		RunnerName:     result.RunnerName,
		RunnerTestName: result.RunnerTestName,
		RunnerMessage:  result.RunnerMessage,
		AssertCount:    result.AssertCount,
		Format:         result.Format,
	}
	if !cmd.Quiet {
		view.RawOutput = result.RawOutput
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func (cmd *runCmd) printText(a *app, result *enginetypes.ExecutionResult) {
	p := a.colors
	w := a.stdout

	fmt.Fprintf(w, "%s %s\n", p.Label("Status:  "), p.Status(result.Status))
	if result.RunnerTestName != "" {
		fmt.Fprintf(w, "%s %s\n", p.Label("Test:    "), result.RunnerTestName)
	}
	if result.RunnerName != "" {
		fmt.Fprintf(w, "%s %s\n", p.Label("Runner:  "), result.RunnerName)
	}
	fmt.Fprintf(w, "%s %s\n", p.Label("Duration:"), result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
	fmt.Fprintf(w, "%s %d\n", p.Label("Asserts: "), result.AssertCount)
	if result.RunnerMessage != "" {
		fmt.Fprintf(w, "%s %s\n", p.Label("Message: "), common.EscapeControlChars(result.RunnerMessage))
	}
	fmt.Fprintf(w, "%s %s\n", p.Label("Output:  "), humanize.Bytes(uint64(len(result.RawOutput))))

	if !cmd.Quiet && result.RawOutput != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, result.RawOutput)
		if result.RawOutput[len(result.RawOutput)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
}
