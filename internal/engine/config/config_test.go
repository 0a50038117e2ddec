package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSimulatedFailure = errors.New("simulated failure")

func configPath() string {
	return filepath.Join(string(filepath.Separator), "data", "RemoteLaunch", FileName)
}

func TestLoader_LoadMissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(configPath(), common.NewMockFileSystem())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, enginetypes.StatusFailed, cfg.Rules().DefaultStatus)
}

func TestLoader_LoadPartialFileKeepsDefaults(t *testing.T) {
	mockFS := common.NewMockFileSystem()
	require.NoError(t, mockFS.AddFile(configPath(), []byte(`
log_results = false
run_as_admin = true
pass_regex = "OK"
default_status = 5

[folders]
program_files = "/srv/tools"
`)))
	cfg, err := NewLoaderWithFS(configPath(), mockFS).Load()
	require.NoError(t, err)

	assert.False(t, cfg.LogResults)
	assert.True(t, cfg.RunAsAdmin)
	assert.Equal(t, "OK", cfg.PassRegex)
	assert.Equal(t, DefaultFailRegex, cfg.FailRegex)
	assert.Equal(t, enginetypes.StatusBlocked, cfg.Rules().DefaultStatus)
	assert.Equal(t, "/srv/tools", cfg.SpecialFolders().ProgramFiles)
}

func TestLoader_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		readErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:    "malformed toml",
			content: "log_results = = true",
			check: func(t *testing.T, err error) {
				assert.Equal(t, runerrors.KindConfig, runerrors.Classify(err))
			},
		},
		{
			name:    "invalid pattern",
			content: `fail_regex = "(unclosed"`,
			check: func(t *testing.T, err error) {
				var patternErr *runerrors.InvalidPatternError
				require.True(t, errors.As(err, &patternErr))
				assert.Equal(t, "fail", patternErr.Rule)
				assert.Equal(t, runerrors.KindInvalidPattern, runerrors.Classify(err))
			},
		},
		{
			name:    "invalid default status",
			content: "default_status = 9",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, enginetypes.ErrInvalidStatus)
			},
		},
		{
			name:    "unreadable file",
			readErr: errSimulatedFailure,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errSimulatedFailure)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := common.NewMockFileSystem()
			require.NoError(t, mockFS.AddFile(configPath(), []byte(tt.content)))
			mockFS.ReadErr = tt.readErr

			_, err := NewLoaderWithFS(configPath(), mockFS).Load()
			require.Error(t, err)

			var configErr *runerrors.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, configPath(), configErr.Path)
			tt.check(t, err)
		})
	}
}

func TestLoader_EmptyPath(t *testing.T) {
	loader := NewLoaderWithFS("", common.NewMockFileSystem())
	_, err := loader.Load()
	assert.ErrorIs(t, err, ErrInvalidConfigPath)
	assert.ErrorIs(t, loader.Save(Default()), ErrInvalidConfigPath)
	_, err = loader.Exists()
	assert.ErrorIs(t, err, ErrInvalidConfigPath)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	mockFS := common.NewMockFileSystem()
	loader := NewLoaderWithFS(configPath(), mockFS)

	cfg := Default()
	cfg.PassRegex = "  all tests passed \n"
	cfg.RunAsAdmin = true
	cfg.ElevationCommand = []string{"pkexec"}
	cfg.DefaultStatus = int(enginetypes.StatusCaution)

	exists, err := loader.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, loader.Save(cfg))
	exists, err = loader.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, "all tests passed", cfg.PassRegex, "patterns are trimmed on save")
	assert.Equal(t, []string{configPath()}, mockFS.GetFiles(), "no temporary file is left behind")

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoader_SaveFailures(t *testing.T) {
	t.Run("invalid pattern is not written", func(t *testing.T) {
		mockFS := common.NewMockFileSystem()
		cfg := Default()
		cfg.BlockedRegex = "[z-a]"

		err := NewLoaderWithFS(configPath(), mockFS).Save(cfg)
		assert.Equal(t, runerrors.KindInvalidPattern, runerrors.Classify(err))
		assert.Empty(t, mockFS.GetFiles())
	})

	t.Run("rename failure removes the temporary file", func(t *testing.T) {
		mockFS := common.NewMockFileSystem()
		mockFS.RenameErr = errSimulatedFailure

		err := NewLoaderWithFS(configPath(), mockFS).Save(Default())
		assert.ErrorIs(t, err, errSimulatedFailure)
		assert.Empty(t, mockFS.GetFiles())
		assert.Equal(t, []string{configPath() + ".tmp"}, mockFS.RemoveCalls)
	})

	t.Run("write failure", func(t *testing.T) {
		mockFS := common.NewMockFileSystem()
		mockFS.WriteErr = errSimulatedFailure

		err := NewLoaderWithFS(configPath(), mockFS).Save(Default())
		var configErr *runerrors.ConfigError
		assert.True(t, errors.As(err, &configErr))
		assert.ErrorIs(t, err, errSimulatedFailure)
	})
}

func TestEngineConfig_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(t *testing.T, cfg *EngineConfig)
		wantErr error
	}{
		{key: "log_results", value: "false", check: func(t *testing.T, cfg *EngineConfig) { assert.False(t, cfg.LogResults) }},
		{key: "run_as_admin", value: "true", check: func(t *testing.T, cfg *EngineConfig) { assert.True(t, cfg.RunAsAdmin) }},
		{key: "pass_regex", value: "OK", check: func(t *testing.T, cfg *EngineConfig) { assert.Equal(t, "OK", cfg.PassRegex) }},
		{key: "default_status", value: "blocked", check: func(t *testing.T, cfg *EngineConfig) {
			assert.Equal(t, int(enginetypes.StatusBlocked), cfg.DefaultStatus)
		}},
		{key: "default_status", value: "6", check: func(t *testing.T, cfg *EngineConfig) {
			assert.Equal(t, int(enginetypes.StatusCaution), cfg.DefaultStatus)
		}},
		{key: "elevation_command", value: "doas -u root", check: func(t *testing.T, cfg *EngineConfig) {
			assert.Equal(t, []string{"doas", "-u", "root"}, cfg.ElevationCommand)
		}},
		{key: "folders.my_documents", value: "/home/u/docs", check: func(t *testing.T, cfg *EngineConfig) {
			assert.Equal(t, "/home/u/docs", cfg.Folders.MyDocuments)
		}},
		{key: "log_results", value: "maybe", wantErr: ErrInvalidValue},
		{key: "default_status", value: "Exploded", wantErr: ErrInvalidValue},
		{key: "colour", value: "red", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "default_status")
	assert.Contains(t, keys, "folders.program_files_x86")
	assert.IsIncreasing(t, keys)
}
