// Package paths provides the small set of file-name manipulations the
// publication pipeline needs: splitting a path into directory and base
// name, stripping extensions, and canonicalizing separators.
package paths

import (
	"path/filepath"
	"strings"
)

// OnlyPath returns the directory portion of name, or "" when name has
// no directory component.
func OnlyPath(name string) string {
	name = Normalize(name)
	dir := filepath.Dir(name)
	if dir == "." {
		return ""
	}
	return dir
}

// StripPath returns the base name of name, without any directory
// component.
func StripPath(name string) string {
	return filepath.Base(Normalize(name))
}

// StripExt returns name without its last extension. A name without an
// extension is returned unchanged.
func StripExt(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext)
}

// Normalize canonicalizes separators to the platform separator and
// collapses redundant path elements. An empty string stays empty.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.FromSlash(name)
	return filepath.Clean(name)
}

// Join joins dir and name with the platform separator and normalizes
// the result. An empty dir yields the normalized name alone.
func Join(dir, name string) string {
	if dir == "" {
		return Normalize(name)
	}
	return Normalize(filepath.Join(dir, name))
}
