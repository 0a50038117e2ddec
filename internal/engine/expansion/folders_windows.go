//go:build windows

package expansion

import (
	"os"
	"path/filepath"
)

func platformSpecialFolders(getenv func(string) string) SpecialFolders {
	profile := getenv("USERPROFILE")
	folders := SpecialFolders{
		ProgramFiles:    getenv("ProgramFiles"),
		ProgramFilesX86: getenv("ProgramFiles(x86)"),
	}
	if profile != "" {
		folders.MyDocuments = filepath.Join(profile, "Documents")
		folders.DesktopDirectory = filepath.Join(profile, "Desktop")
	}
	if public := getenv("PUBLIC"); public != "" {
		folders.CommonDocuments = filepath.Join(public, "Documents")
	}
	// 32-bit Windows has no separate x86 folder
	if folders.ProgramFilesX86 == "" {
		folders.ProgramFilesX86 = folders.ProgramFiles
	}
	return folders
}

func platformAppDataDir(getenv func(string) string) string {
	if local := getenv("LOCALAPPDATA"); local != "" {
		return local
	}
	if profile := getenv("USERPROFILE"); profile != "" {
		return filepath.Join(profile, "AppData", "Local")
	}
	return os.TempDir()
}
