// Package config loads and saves the engine's persisted settings and parses
// request files describing a single test invocation.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/isseis/go-cmdline-engine/internal/engine/classifier"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/expansion"
)

// Error definitions for the config package.
var (
	// ErrUnknownKey is returned by Set for a key that is not a configuration field.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInvalidValue is returned by Set when a value cannot be parsed for its key.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// EngineConfig is the persisted engine configuration.
type EngineConfig struct {
	LogResults bool `toml:"log_results"`
	RunAsAdmin bool `toml:"run_as_admin"`

	PassRegex    string `toml:"pass_regex"`
	FailRegex    string `toml:"fail_regex"`
	CautionRegex string `toml:"caution_regex"`
	BlockedRegex string `toml:"blocked_regex"`
	// DefaultStatus is the host ordinal reported when no pattern matches.
	DefaultStatus int `toml:"default_status"`

	TraceLogging bool `toml:"trace_logging"`
	// WorkDir overrides <appdata>/RemoteLaunch.
	WorkDir string `toml:"work_dir,omitempty"`
	// ElevationCommand is the command prefix for elevated launches on POSIX systems.
	ElevationCommand []string `toml:"elevation_command,omitempty"`

	Folders expansion.SpecialFolders `toml:"folders"`
}

// Rules returns the classification rules described by the configuration.
func (c *EngineConfig) Rules() enginetypes.ClassificationRules {
	return enginetypes.ClassificationRules{
		Pass:          c.PassRegex,
		Caution:       c.CautionRegex,
		Fail:          c.FailRegex,
		Blocked:       c.BlockedRegex,
		DefaultStatus: enginetypes.Status(c.DefaultStatus),
	}
}

// Validate compiles the classification patterns and checks the default status.
func (c *EngineConfig) Validate() error {
	if !enginetypes.Status(c.DefaultStatus).IsValid() {
		return fmt.Errorf("default_status %d: %w", c.DefaultStatus, enginetypes.ErrInvalidStatus)
	}
	if _, err := classifier.Compile(c.Rules()); err != nil {
		return err
	}
	return nil
}

// Normalize trims surrounding whitespace from the patterns.
func (c *EngineConfig) Normalize() {
	c.PassRegex = strings.TrimSpace(c.PassRegex)
	c.FailRegex = strings.TrimSpace(c.FailRegex)
	c.CautionRegex = strings.TrimSpace(c.CautionRegex)
	c.BlockedRegex = strings.TrimSpace(c.BlockedRegex)
}

// SpecialFolders returns the platform special folders with the configured overrides applied.
func (c *EngineConfig) SpecialFolders() expansion.SpecialFolders {
	return expansion.DefaultSpecialFolders().Merge(c.Folders)
}

type setter func(c *EngineConfig, value string) error

func boolSetter(field func(*EngineConfig) *bool) setter {
	return func(c *EngineConfig, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*EngineConfig) *string) setter {
	return func(c *EngineConfig, value string) error {
		*field(c) = value
		return nil
	}
}

var setters = map[string]setter{
	"log_results":   boolSetter(func(c *EngineConfig) *bool { return &c.LogResults }),
	"run_as_admin":  boolSetter(func(c *EngineConfig) *bool { return &c.RunAsAdmin }),
	"trace_logging": boolSetter(func(c *EngineConfig) *bool { return &c.TraceLogging }),
	"pass_regex":    stringSetter(func(c *EngineConfig) *string { return &c.PassRegex }),
	"fail_regex":    stringSetter(func(c *EngineConfig) *string { return &c.FailRegex }),
	"caution_regex": stringSetter(func(c *EngineConfig) *string { return &c.CautionRegex }),
	"blocked_regex": stringSetter(func(c *EngineConfig) *string { return &c.BlockedRegex }),
	"work_dir":      stringSetter(func(c *EngineConfig) *string { return &c.WorkDir }),
	"default_status": func(c *EngineConfig, value string) error {
		status, err := enginetypes.ParseStatus(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		c.DefaultStatus = int(status)
		return nil
	},
	"elevation_command": func(c *EngineConfig, value string) error {
		c.ElevationCommand = strings.Fields(value)
		return nil
	},
	"folders.my_documents":      stringSetter(func(c *EngineConfig) *string { return &c.Folders.MyDocuments }),
	"folders.common_documents":  stringSetter(func(c *EngineConfig) *string { return &c.Folders.CommonDocuments }),
	"folders.desktop_directory": stringSetter(func(c *EngineConfig) *string { return &c.Folders.DesktopDirectory }),
	"folders.program_files":     stringSetter(func(c *EngineConfig) *string { return &c.Folders.ProgramFiles }),
	"folders.program_files_x86": stringSetter(func(c *EngineConfig) *string { return &c.Folders.ProgramFilesX86 }),
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the field named by key. Statuses accept a name or an
// ordinal; elevation_command is split on whitespace.
func (c *EngineConfig) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return set(c, value)
}
