package publisher

import (
	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/paths"
)

// preWriteCheck enforces the predecessor gate: when the request names
// a previous file, that file must no longer exist in the target's
// directory. The check is read-only and a hard stop; the caller
// re-invokes once the predecessor has been cleared.
func (p *Publisher) preWriteCheck(target, previousFileName string) error {
	if previousFileName == "" {
		return nil
	}

	path := paths.Join(paths.OnlyPath(target), previousFileName)
	if filesystem.Exists(p.fs, path) {
		return errors.Newf(errors.ErrSequenceViolation,
			"File still exists: %s", previousFileName)
	}
	return nil
}
