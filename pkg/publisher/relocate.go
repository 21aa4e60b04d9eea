package publisher

import (
	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/expr"
	"github.com/arthur-debert/seqfile/pkg/paths"
)

// moveExistingFile relocates a conflicting target under the Move
// policy. The destination comes from evaluating the moveExisting
// template against the target's file attributes; the move itself is
// the same rename primitive used for temp-file publication, never a
// copy.
func (p *Publisher) moveExistingFile(target string) error {
	to, err := expr.Evaluate(p.endpoint.MoveExisting, expr.NewFileContext(target))
	if err != nil {
		return err
	}

	// Normalize to avoid mixed separators confusing the rename.
	to = paths.Normalize(to)
	if to == "" {
		return errors.Newf(errors.ErrEmptyMoveTarget,
			"moveExisting evaluated as empty string, cannot move existing file: %s", target)
	}

	// The rename primitive needs the destination directory in place.
	if dir := paths.OnlyPath(to); dir != "" {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrRelocationFailure,
				"cannot create directory: %s", dir)
		}
	}

	p.log.Trace().Str("from", target).Str("to", to).Msg("Moving existing file")
	if err := p.fs.Rename(target, to); err != nil {
		return errors.Wrapf(err, errors.ErrRelocationFailure,
			"cannot rename file from: %s to: %s", target, to)
	}
	return nil
}
