package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Request file errors.
var (
	ErrUnsupportedRequestFormat = errors.New("unsupported request file format")
	ErrScriptConflict           = errors.New("script and script_file are mutually exclusive")
)

// RequestFile is the on-disk description of one test invocation.
// A request carrying script or script_file is an embedded-script request;
// otherwise the locator names a command-line tool directly.
type RequestFile struct {
	ProjectID  int    `toml:"project_id" yaml:"project_id"`
	TestCaseID int    `toml:"test_case_id" yaml:"test_case_id"`
	TestRunID  int    `toml:"test_run_id" yaml:"test_run_id"`
	TestSetID  *int   `toml:"test_set_id" yaml:"test_set_id"`
	ReleaseID  *int   `toml:"release_id" yaml:"release_id"`
	RunnerName string `toml:"runner_name" yaml:"runner_name"`

	Locator    string `toml:"locator" yaml:"locator"`
	Script     string `toml:"script" yaml:"script"`
	ScriptFile string `toml:"script_file" yaml:"script_file"`

	Parameters []RequestParameter `toml:"parameters" yaml:"parameters"`
}

// RequestParameter is a name/value pair of a request file.
type RequestParameter struct {
	Name  string `toml:"name" yaml:"name"`
	Value string `toml:"value" yaml:"value"`
}

// LoadRequest parses the request file at path. The format follows the file
// extension: .toml, .yaml or .yml. A relative script_file is resolved against
// the directory of the request file.
func (l *Loader) LoadRequest(path string) (*RequestFile, *enginetypes.TestInvocationRequest, error) {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var rf RequestFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(content, &rf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &rf)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedRequestFormat, ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}

	req, err := l.buildRequest(&rf, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return &rf, req, nil
}

func (l *Loader) buildRequest(rf *RequestFile, baseDir string) (*enginetypes.TestInvocationRequest, error) {
	if rf.Script != "" && rf.ScriptFile != "" {
		return nil, ErrScriptConflict
	}

	req := &enginetypes.TestInvocationRequest{
		TestCaseID: rf.TestCaseID,
		TestRunID:  rf.TestRunID,
		TestSetID:  rf.TestSetID,
		ReleaseID:  rf.ReleaseID,
		RunnerName: rf.RunnerName,
		Source: enginetypes.Source{
			Kind:    enginetypes.SourceReference,
			Locator: rf.Locator,
		},
	}
	for _, p := range rf.Parameters {
		req.Parameters = append(req.Parameters, enginetypes.Parameter{Name: p.Name, Value: p.Value})
	}

	switch {
	case rf.Script != "":
		req.Source.Kind = enginetypes.SourceEmbeddedScript
		req.Source.Script = []byte(rf.Script)
	case rf.ScriptFile != "":
		scriptPath := rf.ScriptFile
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(baseDir, scriptPath)
		}
		script, err := l.fs.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read script file: %w", err)
		}
		req.Source.Kind = enginetypes.SourceEmbeddedScript
		req.Source.Script = script
	}
	return req, nil
}
