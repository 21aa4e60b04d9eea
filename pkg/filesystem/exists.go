package filesystem

import (
	"github.com/arthur-debert/seqfile/pkg/types"
)

// Exists reports whether name is present on fsys. Any Stat error is
// treated as absent; the publisher's own primitives surface real I/O
// failures when they act on the path.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
