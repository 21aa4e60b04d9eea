package types

import (
	"io/fs"
)

// FS is the filesystem surface the publisher orchestrates. It covers
// exactly the primitives publication needs: existence checks go through
// Stat, conflict handling through Remove and Rename, and payload
// delivery through WriteFile/AppendFile.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	AppendFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Conflict handling
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
