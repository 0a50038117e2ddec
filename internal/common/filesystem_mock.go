package common

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem implements FileSystem in memory for testing.
// Individual operations can be made to fail by setting the corresponding *Err field.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	MkdirErr  error
	WriteErr  error
	ReadErr   error
	RemoveErr error
	RenameErr error

	// RemoveCalls records every path passed to Remove.
	RemoveCalls []string
}

// MockFileInfo implements fs.FileInfo for testing.
type MockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

// Name returns the base name of the file.
func (m *MockFileInfo) Name() string { return m.name }

// Size returns the length in bytes.
func (m *MockFileInfo) Size() int64 { return m.size }

// Mode returns the file mode bits.
func (m *MockFileInfo) Mode() os.FileMode { return m.mode }

// ModTime returns the modification time.
func (m *MockFileInfo) ModTime() time.Time { return m.modTime }

// IsDir reports whether m describes a directory.
func (m *MockFileInfo) IsDir() bool { return m.isDir }

// Sys returns nil for mock entries.
func (m *MockFileInfo) Sys() any { return nil }

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  map[string]bool{string(filepath.Separator): true},
	}
}

// MkdirAll creates directories and all parent directories in the mock filesystem.
func (m *MockFileSystem) MkdirAll(path string, _ os.FileMode) error {
	if m.MkdirErr != nil {
		return m.MkdirErr
	}
	if path == "" {
		return ErrEmptyPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, isFile := m.files[p]; isFile {
			return fmt.Errorf("mkdir %s: %w", p, fs.ErrExist)
		}
		m.dirs[p] = true
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	return nil
}

// WriteFile stores data for path. The parent directory must exist.
func (m *MockFileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if path == "" {
		return ErrEmptyPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// ReadFile returns the stored content of path.
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Remove removes a single file or empty directory from the mock filesystem.
func (m *MockFileSystem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RemoveCalls = append(m.RemoveCalls, path)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}

	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		prefix := path + string(filepath.Separator)
		for p := range m.files {
			if strings.HasPrefix(p, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrExist}
			}
		}
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
}

// Rename moves a file inside the mock filesystem.
func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	if m.RenameErr != nil {
		return m.RenameErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	data, ok := m.files[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldPath)
	m.files[newPath] = data
	return nil
}

// Lstat returns file information for the given path.
func (m *MockFileSystem) Lstat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return &MockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: DefaultFilePerm, modTime: time.Now()}, nil
	}
	if m.dirs[path] {
		return &MockFileInfo{name: filepath.Base(path), mode: DefaultDirPerm | os.ModeDir, modTime: time.Now(), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
}

// FileExists checks if a file or directory exists in the mock filesystem.
func (m *MockFileSystem) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

// TempDir returns the default directory for temporary files.
func (m *MockFileSystem) TempDir() string {
	return filepath.Join(string(filepath.Separator), "tmp")
}

// AddFile adds a file, creating its parent directories (for testing).
func (m *MockFileSystem) AddFile(path string, content []byte) error {
	if err := m.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = append([]byte(nil), content...)
	return nil
}

// GetFiles returns all file paths in the mock filesystem (for testing).
func (m *MockFileSystem) GetFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	files := make([]string, 0, len(m.files))
	for path := range m.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// GetDirs returns all directories in the mock filesystem (for testing).
func (m *MockFileSystem) GetDirs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirs := make([]string, 0, len(m.dirs))
	for path := range m.dirs {
		dirs = append(dirs, path)
	}
	sort.Strings(dirs)
	return dirs
}
