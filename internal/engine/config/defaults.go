package config

import (
	"path/filepath"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
)

// Default values for configuration fields.
const (
	DefaultLogResults    = true
	DefaultRunAsAdmin    = false
	DefaultPassRegex     = "passed|success"
	DefaultCautionRegex  = "warning|caution"
	DefaultFailRegex     = "failed|failure"
	DefaultBlockedRegex  = "blocked"
	DefaultDefaultStatus = int(enginetypes.StatusFailed)

	// FileName is the name of the configuration file inside the working directory.
	FileName = "CommandLineEngine.toml"
)

// Default returns the configuration used when no file has been saved yet.
func Default() *EngineConfig {
	return &EngineConfig{
		LogResults:    DefaultLogResults,
		RunAsAdmin:    DefaultRunAsAdmin,
		PassRegex:     DefaultPassRegex,
		CautionRegex:  DefaultCautionRegex,
		FailRegex:     DefaultFailRegex,
		BlockedRegex:  DefaultBlockedRegex,
		DefaultStatus: DefaultDefaultStatus,
	}
}

// DefaultPath returns the configuration path inside workDir.
func DefaultPath(workDir string) string {
	return filepath.Join(workDir, FileName)
}
