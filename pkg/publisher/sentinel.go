package publisher

import (
	"strings"

	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/expr"
	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/paths"
)

// DoneFileName computes the sentinel name for target from pattern.
// Only ${file:name} and ${file:name.noext} (plus their $simple{...}
// alias forms) are supported, substituted literally at their first
// occurrence. Any placeholder syntax left afterwards is a
// configuration error. A bare result is placed in target's directory;
// a result with a directory component is used as-is.
func DoneFileName(target, pattern string) (string, error) {
	onlyName := paths.StripPath(target)
	noext := paths.StripExt(onlyName)

	out := pattern
	out = strings.Replace(out, "${file:name.noext}", noext, 1)
	out = strings.Replace(out, "$simple{file:name.noext}", noext, 1)
	out = strings.Replace(out, "${file:name}", onlyName, 1)
	out = strings.Replace(out, "$simple{file:name}", onlyName, 1)

	if expr.HasStartToken(out) {
		return "", errors.Newf(errors.ErrUnresolvedPlaceholder,
			"%s. Cannot resolve reminder: %s", target, out)
	}
	if out == "" {
		return "", errors.New(errors.ErrConfigInvalid, "doneFileName must not be empty")
	}

	if paths.OnlyPath(out) == "" {
		// The done file lives next to the real file.
		if dir := paths.OnlyPath(target); dir != "" {
			return paths.Join(dir, out), nil
		}
		return out, nil
	}
	return paths.Normalize(out), nil
}

// writeDoneFile emits the empty sentinel after the target has been
// published. A pre-existing sentinel is deleted unconditionally so
// consumers never act on a marker older than the payload.
func (p *Publisher) writeDoneFile(target string) error {
	doneFileName, err := DoneFileName(target, p.endpoint.DoneFileName)
	if err != nil {
		return err
	}

	p.log.Trace().Str("doneFile", doneFileName).Msg("Writing done file")

	if filesystem.Exists(p.fs, doneFileName) {
		if err := p.fs.Remove(doneFileName); err != nil {
			return errors.Wrapf(err, errors.ErrCleanupFailure,
				"cannot delete existing done file: %s", doneFileName)
		}
	}

	if dir := paths.OnlyPath(doneFileName); dir != "" {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"cannot create directory: %s", dir)
		}
	}
	if err := p.fs.WriteFile(doneFileName, []byte{}, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"cannot write done file: %s", doneFileName)
	}
	return nil
}
