package publisher

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/seqfile/pkg/config"
	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/expr"
	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/logging"
	"github.com/arthur-debert/seqfile/pkg/paths"
	"github.com/arthur-debert/seqfile/pkg/policy"
	"github.com/arthur-debert/seqfile/pkg/types"
)

// Publisher publishes payloads into one endpoint directory. It is
// stateless between calls; the filesystem carries all coordination.
type Publisher struct {
	endpoint *config.Endpoint
	fs       types.FS
	log      zerolog.Logger
}

// New creates a Publisher for the given endpoint. The endpoint is
// validated here, once; an invalid option combination is fatal and
// never retried.
func New(ep *config.Endpoint, fsys types.FS) (*Publisher, error) {
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return &Publisher{
		endpoint: ep,
		fs:       fsys,
		log:      logging.GetLogger("publisher"),
	}, nil
}

// Publish writes one payload under its target name, honoring the
// endpoint's conflict policy, temp-and-rename strategy, predecessor
// gate and done file. On SentinelFailed the returned error describes
// the sentinel problem while the result still carries the published
// name.
func (p *Publisher) Publish(req types.Request) (types.Result, error) {
	target := p.resolveTarget(req.FileName)
	log := p.log.With().Str("target", target).Logger()
	log.Trace().Msg("Processing file")

	if err := p.preWriteCheck(target, req.PreviousFileName); err != nil {
		return types.Result{}, err
	}

	var tempTarget string
	if p.endpoint.WriteAsTempAndRename() {
		var err error
		tempTarget, err = p.createTempFileName(target)
		if err != nil {
			return types.Result{}, err
		}
		log.Trace().Str("temp", tempTarget).Msg("Writing using temp file name")

		if p.endpoint.FileExist != policy.TryRename && p.endpoint.EagerDeleteTargetFile {
			res, done, err := p.resolveConflict(log, target)
			if done || err != nil {
				return res, err
			}
		}

		// A stray temp file left by an earlier crashed run must go
		// before we write under the same name.
		if p.endpoint.FileExist != policy.TryRename && filesystem.Exists(p.fs, tempTarget) {
			log.Trace().Str("temp", tempTarget).Msg("Deleting existing temp file")
			if err := p.fs.Remove(tempTarget); err != nil {
				return types.Result{}, errors.Wrapf(err, errors.ErrCleanupFailure,
					"cannot delete file: %s", tempTarget)
			}
		}
	} else if p.endpoint.FileExist != policy.TryRename {
		res, done, err := p.resolveConflict(log, target)
		if done || err != nil {
			return res, err
		}
	}

	writeTarget := target
	if tempTarget != "" {
		writeTarget = tempTarget
	}
	if err := p.writeFile(writeTarget, req.Body); err != nil {
		return types.Result{}, err
	}
	log.Trace().Str("path", writeTarget).Msg("Payload written")

	if tempTarget != "" {
		if p.endpoint.FileExist != policy.TryRename && !p.endpoint.EagerDeleteTargetFile {
			res, done, err := p.resolveConflict(log, target)
			if done || err != nil {
				// Lazy mode abandons the temp file on Ignore and Fail:
				// minimal writes win over tidiness here, and the next
				// run's stray-temp check picks the file up.
				return res, err
			}
		}

		log.Trace().Str("temp", tempTarget).Msg("Renaming temp file to target")
		if err := p.fs.Rename(tempTarget, target); err != nil {
			// The temp file stays in place for diagnosis; no retry.
			return types.Result{}, errors.Wrapf(err, errors.ErrRenameFailure,
				"cannot rename file from: %s to: %s", tempTarget, target)
		}
	}

	if p.endpoint.DoneFileName != "" {
		if err := p.writeDoneFile(target); err != nil {
			return types.Result{FileNameProduced: target, Outcome: types.SentinelFailed}, err
		}
	}

	log.Trace().Msg("File published")
	return types.Result{FileNameProduced: target, Outcome: types.Published}, nil
}

// resolveConflict runs the conflict policy against the target and
// performs the single resulting action. done reports that the publish
// call is finished (Ignore short-circuit).
func (p *Publisher) resolveConflict(log zerolog.Logger, target string) (types.Result, bool, error) {
	action := policy.Resolve(p.endpoint.FileExist, filesystem.Exists(p.fs, target))
	log.Trace().Str("action", action.String()).Msg("Conflict policy resolved")

	switch action {
	case policy.Proceed:
		return types.Result{}, false, nil
	case policy.SkipSilently:
		log.Trace().Msg("An existing file already exists, ignoring and not overriding it")
		return types.Result{FileNameProduced: target, Outcome: types.Skipped}, true, nil
	case policy.FailExisting:
		return types.Result{}, false, errors.Newf(errors.ErrTargetExists,
			"file already exists: %s, cannot write new file", target)
	case policy.MoveThenProceed:
		return types.Result{}, false, p.moveExistingFile(target)
	case policy.DeleteThenProceed:
		log.Trace().Msg("Deleting existing target file")
		if err := p.fs.Remove(target); err != nil {
			return types.Result{}, false, errors.Wrapf(err, errors.ErrCleanupFailure,
				"cannot delete file: %s", target)
		}
		return types.Result{}, false, nil
	default:
		return types.Result{}, false, errors.Newf(errors.ErrInternal,
			"unhandled conflict action: %v", action)
	}
}

// resolveTarget maps the logical file name onto the endpoint
// directory; absolute names pass through unchanged.
func (p *Publisher) resolveTarget(fileName string) string {
	name := paths.Normalize(fileName)
	if filepath.IsAbs(name) {
		return name
	}
	return paths.Join(p.endpoint.Directory, name)
}

// createTempFileName computes the temporary name the payload is
// written under before the rename. A bare template result lands in
// the target's directory.
func (p *Publisher) createTempFileName(target string) (string, error) {
	dir := paths.OnlyPath(target)

	if p.endpoint.TempFileName != "" {
		name, err := expr.Evaluate(p.endpoint.TempFileName, expr.NewFileContext(target))
		if err != nil {
			return "", err
		}
		if name == "" {
			return "", errors.New(errors.ErrConfigInvalid,
				"tempFileName evaluated as empty string")
		}
		if paths.OnlyPath(name) == "" {
			return paths.Join(dir, name), nil
		}
		return paths.Normalize(name), nil
	}

	return paths.Join(dir, p.endpoint.TempPrefix+paths.StripPath(target)), nil
}

// writeFile delivers the payload through the collaborator, creating
// the parent directory when needed. Append policy appends; everything
// else truncates.
func (p *Publisher) writeFile(name string, body []byte) error {
	if dir := paths.OnlyPath(name); dir != "" {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot create directory: %s", dir)
		}
	}

	var err error
	if p.endpoint.FileExist == policy.Append {
		err = p.fs.AppendFile(name, body, 0o644)
	} else {
		err = p.fs.WriteFile(name, body, 0o644)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write file: %s", name)
	}
	return nil
}
