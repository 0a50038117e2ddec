package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errHandlerFailed = errors.New("handler failed")

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Handle(context.Context, slog.Record) error { return errHandlerFailed }

func TestMultiHandler(t *testing.T) {
	var info, debug bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("engine", "CommandLine").WithGroup("run")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("resolved", "exe", "tool")
	logger.Info("launched", "exe", "tool")

	assert.NotContains(t, info.String(), "resolved")
	assert.Contains(t, info.String(), "launched")
	assert.Contains(t, info.String(), "engine=CommandLine")
	assert.Contains(t, info.String(), "run.exe=tool")
	assert.Contains(t, debug.String(), "resolved")
	assert.Contains(t, debug.String(), "launched")
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var out bytes.Buffer
	inner := slog.NewTextHandler(&out, nil)
	h := NewMultiHandler(failingHandler{inner}, inner)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	assert.ErrorIs(t, err, errHandlerFailed)
	assert.Contains(t, out.String(), "msg", "remaining handlers still receive the record")
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "-user fred -password=hunter2 -v", want: "-user fred -password=*** -v"},
		{input: "api_key: abc123", want: "api_key: ***"},
		{input: `TOKEN="a b c" rest`, want: "TOKEN=*** rest"},
		{input: "no secrets here", want: "no secrets here"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactString(tt.input))
		})
	}
}

func TestRedactingHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil))).With("password", "p4ss")

	logger.Info("launching secret=xyz",
		"arguments", "-token=abc",
		"error", errors.New("unable to launch with '-secret=s3'"),
		slog.Group("request", slog.String("api_key", "k"), slog.Int("test_case_id", 4)),
		"count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "launching secret=***", entry["msg"])
	assert.Equal(t, Redacted, entry["password"])
	assert.Equal(t, "-token=***", entry["arguments"])
	assert.Equal(t, "unable to launch with '-secret=***", entry["error"])
	assert.Equal(t, map[string]any{"api_key": Redacted, "test_case_id": float64(4)}, entry["request"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warn": slog.LevelWarn, "warning": slog.LevelWarn, "Error": slog.LevelError,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestGenerateRunID(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := GenerateRunID()
		require.Len(t, id, 26)
		for _, c := range id {
			assert.True(t, strings.ContainsRune("0123456789ABCDEFGHJKMNPQRSTVWXYZ", c), "invalid ULID character %c", c)
		}
		assert.False(t, ids[id], "duplicate run id %s", id)
		ids[id] = true
	}
}

func TestSetup_ConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, err := Setup(Config{
		Level:    slog.LevelDebug,
		Console:  &console,
		LogDir:   logDir,
		RunID:    "01HZRUNID",
		Hostname: "builder",
	})
	require.NoError(t, err)

	logger.Debug("Launching command", "command", "tool -password=x")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close(), "closing twice is harmless")

	assert.Contains(t, console.String(), "Launching command")
	assert.Contains(t, console.String(), "-password=***")

	assert.True(t, strings.HasPrefix(filepath.Base(logger.FilePath), "builder_"))
	assert.True(t, strings.HasSuffix(logger.FilePath, "_01HZRUNID.json"))

	data, err := os.ReadFile(logger.FilePath)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "builder", entry["hostname"])
	assert.Equal(t, "01HZRUNID", entry["run_id"])
	assert.Equal(t, float64(logSchemaVersion), entry["schema_version"])
	assert.Equal(t, "tool -password=***", entry["command"])
}

func TestSetup_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger, err := Setup(Config{Level: slog.LevelWarn, Console: &console})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.Empty(t, logger.FilePath)
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.NoError(t, logger.Close())
}

func TestLogFileName(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "host_20260304T050607Z_RUN.json", LogFileName("host", ts, "RUN"))
}

func TestSlogEventLog(t *testing.T) {
	var buf bytes.Buffer
	events := NewEventLog(slog.New(slog.NewTextHandler(&buf, nil)), "CommandLine")

	events.LogEvent("Starting test execution", SeverityInfo)
	events.LogEvent("unable to launch", SeverityError)

	out := buf.String()
	assert.Contains(t, out, `level=INFO msg="Starting test execution" source=CommandLine`)
	assert.Contains(t, out, `level=ERROR msg="unable to launch" source=CommandLine`)
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "info", SeverityInfo.String())
}

func TestHandlePreExecutionError(t *testing.T) {
	var logBuf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	cause := errors.New("open request.toml: no such file")
	preErr := &PreExecutionError{
		Type:      ErrorTypeRequestLoad,
		Message:   "Failed to load request file",
		Component: "cli",
		RunID:     "RUN1",
		Err:       cause,
	}
	assert.ErrorIs(t, preErr, cause)
	assert.Contains(t, preErr.Error(), "request_load_failed: Failed to load request file")

	var out bytes.Buffer
	HandlePreExecutionError(&out, preErr)

	assert.Equal(t, "Error: request_load_failed\n"+
		"  Component: cli\n"+
		"  Details: Failed to load request file: open request.toml: no such file\n"+
		"  Run ID: RUN1\n"+
		"RUN_SUMMARY run_id=RUN1 exit_code=1 status=pre_execution_error\n", out.String())
	assert.Contains(t, logBuf.String(), "error_type=request_load_failed")
}
