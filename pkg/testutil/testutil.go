// Package testutil provides test helpers for the publication
// pipeline: a fault-injecting filesystem wrapper and content
// assertions.
package testutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/types"
)

// FaultFS wraps a types.FS and fails selected operations on selected
// paths. The zero maps mean no injected faults.
type FaultFS struct {
	types.FS

	RemoveErr map[string]error
	RenameErr map[string]error
	WriteErr  map[string]error
}

// NewFaultFS wraps fsys with empty fault maps.
func NewFaultFS(fsys types.FS) *FaultFS {
	return &FaultFS{
		FS:        fsys,
		RemoveErr: make(map[string]error),
		RenameErr: make(map[string]error),
		WriteErr:  make(map[string]error),
	}
}

func (f *FaultFS) Remove(name string) error {
	if err, ok := f.RemoveErr[name]; ok {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err, ok := f.RenameErr[oldpath]; ok {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err, ok := f.WriteErr[name]; ok {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

// RequireFileContent asserts that path exists on fsys with exactly the
// given content.
func RequireFileContent(t *testing.T, fsys types.FS, path, want string) {
	t.Helper()
	got, err := fsys.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	assert.Equal(t, want, string(got), "content of %s", path)
}

// RequireAbsent asserts that path does not exist on fsys.
func RequireAbsent(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	require.False(t, filesystem.Exists(fsys, path), "%s should not exist", path)
}

// RequirePresent asserts that path exists on fsys.
func RequirePresent(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	require.True(t, filesystem.Exists(fsys, path), "%s should exist", path)
}
