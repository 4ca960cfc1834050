package filesystem

import (
	"os"
)

// FileSystem defines filesystem operations for testability.
// This interface allows injecting failures in tests.
type FileSystem interface {
	// Stat returns file info.
	Stat(name string) (os.FileInfo, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Chmod changes file permissions.
	Chmod(name string, mode os.FileMode) error

	// WriteFile writes data to a file.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// WriteFileAtomic writes data to a file with all-or-nothing visibility.
	WriteFileAtomic(name string, data []byte, perm os.FileMode) error

	// ReadFile reads a file.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads a directory, returning its entries sorted by filename.
	ReadDir(name string) ([]os.DirEntry, error)

	// Remove removes a file or empty directory.
	Remove(name string) error
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the real filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (*OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (*OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (*OSFileSystem) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (*OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (*OSFileSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	return WriteFileAtomic(name, data, perm)
}

func (*OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (*OSFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

func (*OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}
