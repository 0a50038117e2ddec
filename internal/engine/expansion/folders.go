package expansion

import "os"

// SpecialFolders holds the absolute paths substituted for the special-folder tokens.
// An empty field expands to the empty string.
type SpecialFolders struct {
	MyDocuments      string `toml:"my_documents"`
	CommonDocuments  string `toml:"common_documents"`
	DesktopDirectory string `toml:"desktop_directory"`
	ProgramFiles     string `toml:"program_files"`
	ProgramFilesX86  string `toml:"program_files_x86"`
}

// DefaultSpecialFolders returns the special folders of the current platform.
func DefaultSpecialFolders() SpecialFolders {
	return platformSpecialFolders(os.Getenv)
}

// Merge returns f with every non-empty field of override applied.
func (f SpecialFolders) Merge(override SpecialFolders) SpecialFolders {
	if override.MyDocuments != "" {
		f.MyDocuments = override.MyDocuments
	}
	if override.CommonDocuments != "" {
		f.CommonDocuments = override.CommonDocuments
	}
	if override.DesktopDirectory != "" {
		f.DesktopDirectory = override.DesktopDirectory
	}
	if override.ProgramFiles != "" {
		f.ProgramFiles = override.ProgramFiles
	}
	if override.ProgramFilesX86 != "" {
		f.ProgramFilesX86 = override.ProgramFilesX86
	}
	return f
}

// AppDataDir returns the per-user local application data directory used for
// the engine's working files.
func AppDataDir() string {
	return platformAppDataDir(os.Getenv)
}
