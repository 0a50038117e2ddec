// Package workdir manages the engine's working directory and the fixed-name
// files inside it: the materialized embedded test script and the transient
// output log of elevated runs.
//
// File names are fixed per engine, so at most one execution may use a
// Manager's directory at a time. Callers serialize executions; no locks are
// taken here.
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isseis/go-cmdline-engine/internal/common"
)

// DirName is the folder created under the application data directory.
const DirName = "RemoteLaunch"

// ErrNoBaseDir is returned when a Manager is built without a directory.
var ErrNoBaseDir = errors.New("working directory is not set")

// Manager owns the engine working directory.
type Manager struct {
	dir    string
	engine string
	fs     common.FileSystem
}

// NewManager creates a manager for dir using the OS file system.
func NewManager(dir, engine string) *Manager {
	return NewManagerWithFS(dir, engine, common.NewDefaultFileSystem())
}

// NewManagerWithFS creates a manager for dir with a custom FileSystem.
func NewManagerWithFS(dir, engine string, fs common.FileSystem) *Manager {
	return &Manager{
		dir:    dir,
		engine: engine,
		fs:     fs,
	}
}

// DefaultDir returns <appDataDir>/RemoteLaunch.
func DefaultDir(appDataDir string) string {
	return filepath.Join(appDataDir, DirName)
}

// Dir returns the working directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// FS returns the file system used by the manager.
func (m *Manager) FS() common.FileSystem {
	return m.fs
}

// ScriptPath returns the path of the materialized embedded script.
func (m *Manager) ScriptPath() string {
	return filepath.Join(m.dir, m.engine+"Engine.txt")
}

// OutputLogPath returns the path of the elevated-run output log.
func (m *Manager) OutputLogPath() string {
	return filepath.Join(m.dir, m.engine+"_Output.log")
}

// Ensure creates the working directory if it does not exist.
func (m *Manager) Ensure() error {
	if m.dir == "" {
		return ErrNoBaseDir
	}
	if err := m.fs.MkdirAll(m.dir, common.DefaultDirPerm); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", m.dir, err)
	}
	return nil
}

// WriteScript writes body to ScriptPath, creating the directory first, and
// returns the script path. An existing script from a previous run is overwritten.
func (m *Manager) WriteScript(body string) (string, error) {
	if err := m.Ensure(); err != nil {
		return "", err
	}
	path := m.ScriptPath()
	if err := m.fs.WriteFile(path, []byte(body), common.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write test script %s: %w", path, err)
	}
	return path, nil
}

// ReadOutputLog returns the content of the output log. A log that was never
// created yields an empty string and found=false.
func (m *Manager) ReadOutputLog() (content string, found bool, err error) {
	path := m.OutputLogPath()
	data, err := m.fs.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read output log %s: %w", path, err)
	}
	return string(data), true, nil
}

// RemoveOutputLog deletes the output log.
func (m *Manager) RemoveOutputLog() error {
	return m.fs.Remove(m.OutputLogPath())
}
