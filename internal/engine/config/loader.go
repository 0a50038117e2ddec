package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfigPath is returned when the config file path is empty.
var ErrInvalidConfigPath = errors.New("invalid config file path")

// Loader reads and writes the engine configuration file.
type Loader struct {
	fs   common.FileSystem
	path string
}

// NewLoader creates a loader for path using the OS file system.
func NewLoader(path string) *Loader {
	return NewLoaderWithFS(path, common.NewDefaultFileSystem())
}

// NewLoaderWithFS creates a loader for path with a custom FileSystem.
func NewLoaderWithFS(path string, fs common.FileSystem) *Loader {
	return &Loader{
		fs:   fs,
		path: path,
	}
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Exists reports whether the configuration file has been saved.
func (l *Loader) Exists() (bool, error) {
	if l.path == "" {
		return false, &runerrors.ConfigError{Err: ErrInvalidConfigPath}
	}
	return l.fs.FileExists(l.path)
}

// Load reads and validates the configuration. A file that does not exist
// yields the defaults; keys missing from the file keep their default values.
func (l *Loader) Load() (*EngineConfig, error) {
	if l.path == "" {
		return nil, &runerrors.ConfigError{Err: ErrInvalidConfigPath}
	}

	cfg := Default()
	content, err := l.fs.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, &runerrors.ConfigError{Path: l.path, Err: err}
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, &runerrors.ConfigError{Path: l.path, Err: fmt.Errorf("failed to parse config: %w", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &runerrors.ConfigError{Path: l.path, Err: err}
	}
	return cfg, nil
}

// Save validates cfg and writes it to the configuration file. Patterns are
// trimmed first. The file is written next to its destination and renamed
// into place.
func (l *Loader) Save(cfg *EngineConfig) error {
	if l.path == "" {
		return &runerrors.ConfigError{Err: ErrInvalidConfigPath}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return &runerrors.ConfigError{Path: l.path, Err: err}
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return &runerrors.ConfigError{Path: l.path, Err: fmt.Errorf("failed to encode config: %w", err)}
	}

	if err := l.fs.MkdirAll(filepath.Dir(l.path), common.DefaultDirPerm); err != nil {
		return &runerrors.ConfigError{Path: l.path, Err: err}
	}
	tmp := l.path + ".tmp"
	if err := l.fs.WriteFile(tmp, content, common.DefaultFilePerm); err != nil {
		return &runerrors.ConfigError{Path: l.path, Err: err}
	}
	if err := l.fs.Rename(tmp, l.path); err != nil {
		_ = l.fs.Remove(tmp)
		return &runerrors.ConfigError{Path: l.path, Err: err}
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg *EngineConfig) ([]byte, error) {
	return toml.Marshal(cfg)
}
