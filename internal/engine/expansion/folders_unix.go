//go:build !windows

package expansion

import (
	"os"
	"path/filepath"
)

func homeDir(getenv func(string) string) string {
	if home := getenv("HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

func platformSpecialFolders(getenv func(string) string) SpecialFolders {
	home := homeDir(getenv)

	docs := getenv("XDG_DOCUMENTS_DIR")
	if docs == "" && home != "" {
		docs = filepath.Join(home, "Documents")
	}
	desktop := getenv("XDG_DESKTOP_DIR")
	if desktop == "" && home != "" {
		desktop = filepath.Join(home, "Desktop")
	}

	return SpecialFolders{
		MyDocuments:      docs,
		CommonDocuments:  "/usr/local/share",
		DesktopDirectory: desktop,
		ProgramFiles:     "/opt",
		ProgramFilesX86:  "/opt",
	}
}

func platformAppDataDir(getenv func(string) string) string {
	if data := getenv("XDG_DATA_HOME"); data != "" {
		return data
	}
	if home := homeDir(getenv); home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return os.TempDir()
}
