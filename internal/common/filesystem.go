// Package common provides shared interfaces and utilities used across the engine packages.
//
//nolint:revive // var-naming: package name "common" is intentional for shared internal utilities
package common

import (
	"errors"
	"io/fs"
	"os"
)

// Error definitions for static error handling.
var (
	ErrEmptyPath = errors.New("path cannot be empty")
)

const (
	// DefaultDirPerm represents default directory permissions (rwxr-xr-x).
	DefaultDirPerm = 0o755

	// DefaultFilePerm represents default permissions for files written by the engine (rw-r--r--).
	DefaultFilePerm = 0o644
)

// FileSystem defines the interface for file system operations
// This interface allows for easy mocking in tests and provides a consistent API
// for file operations across all packages.
type FileSystem interface {
	// MkdirAll creates a directory and all necessary parents with the specified permissions
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile writes data to the named file, creating it if necessary
	WriteFile(path string, data []byte, perm os.FileMode) error

	// ReadFile reads the whole named file
	ReadFile(path string) ([]byte, error)

	// Remove removes a single file or empty directory
	Remove(path string) error

	// Rename moves oldPath to newPath, replacing newPath if it exists
	Rename(oldPath, newPath string) error

	// Lstat returns file information
	Lstat(path string) (fs.FileInfo, error)

	// FileExists checks if a file or directory exists
	FileExists(path string) (bool, error)

	// TempDir returns the default directory for temporary files
	TempDir() string
}

// DefaultFileSystem implements FileSystem using standard os package functions.
type DefaultFileSystem struct{}

// NewDefaultFileSystem creates a new DefaultFileSystem.
func NewDefaultFileSystem() *DefaultFileSystem {
	return &DefaultFileSystem{}
}

// MkdirAll creates a directory and all necessary parents with the specified permissions.
func (fs *DefaultFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	return os.MkdirAll(path, perm)
}

// WriteFile writes data to the named file, creating it if necessary.
func (fs *DefaultFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	return os.WriteFile(path, data, perm)
}

// ReadFile reads the whole named file.
func (fs *DefaultFileSystem) ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return os.ReadFile(path) // #nosec G304 - callers pass engine-owned paths
}

// Remove removes a single file or empty directory.
func (fs *DefaultFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// Rename moves oldPath to newPath.
func (fs *DefaultFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Lstat returns file information.
func (fs *DefaultFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// FileExists checks if a file or directory exists.
func (fs *DefaultFileSystem) FileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// TempDir returns the default directory for temporary files.
func (fs *DefaultFileSystem) TempDir() string {
	return os.TempDir()
}
