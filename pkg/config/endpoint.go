// Package config holds the endpoint configuration for sequential file
// publication: the target directory plus the conflict, temp-name,
// move-existing and done-file options, with all cross-option rules
// validated once at setup.
package config

import (
	"strings"

	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/expr"
	"github.com/arthur-debert/seqfile/pkg/paths"
	"github.com/arthur-debert/seqfile/pkg/policy"
)

// Endpoint aggregates everything a publisher needs to know about one
// output directory. It is read-only after Validate; per-call state
// travels in types.Request instead.
type Endpoint struct {
	// Directory is the output directory all relative targets resolve
	// against. It must be static: no placeholder expressions.
	Directory string

	// FileExist is the conflict policy for a pre-existing target.
	FileExist policy.Policy

	// TempPrefix, when set, publishes through <dir>/<prefix><name>
	// before renaming to the target.
	TempPrefix string

	// TempFileName, when set, is a placeholder template evaluated
	// against the target's file attributes to produce the temp name.
	// Takes precedence over TempPrefix.
	TempFileName string

	// EagerDeleteTargetFile controls when the conflict policy runs in
	// temp mode: before the temp write (true, the default) or after
	// it, just before the rename.
	EagerDeleteTargetFile bool

	// MoveExisting is the relocation template for the Move policy.
	MoveExisting string

	// DoneFileName, when set, is the pattern for the sentinel file
	// written after successful publication.
	DoneFileName string
}

// NewEndpoint creates an endpoint for directory with defaults:
// Override on conflict, eager delete enabled, no temp name, no done
// file. The directory must not contain placeholder expressions.
func NewEndpoint(directory string) (*Endpoint, error) {
	if expr.HasStartToken(directory) {
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"invalid directory: %s. Dynamic expressions with ${ } placeholders are not allowed", directory)
	}
	return &Endpoint{
		Directory:             paths.Normalize(directory),
		FileExist:             policy.Override,
		EagerDeleteTargetFile: true,
	}, nil
}

// WriteAsTempAndRename reports whether publication goes through a
// temporary name.
func (e *Endpoint) WriteAsTempAndRename() bool {
	return e.TempFileName != "" || e.TempPrefix != ""
}

// Validate checks the cross-option rules once, at setup time. A
// publisher refuses to start on an invalid endpoint; nothing here is
// re-checked per call.
func (e *Endpoint) Validate() error {
	if e.Directory == "" {
		return errors.New(errors.ErrConfigInvalid, "endpoint directory must be set")
	}

	// Append writes into the existing target in place, which cannot be
	// combined with writing somewhere else first.
	if e.FileExist == policy.Append && e.WriteAsTempAndRename() {
		return errors.New(errors.ErrConfigInvalid,
			"you cannot set both fileExist=Append and tempPrefix/tempFileName options")
	}

	if e.FileExist == policy.Move && e.MoveExisting == "" {
		return errors.New(errors.ErrConfigInvalid,
			"you must configure moveExisting option when fileExist=Move")
	}
	if e.MoveExisting != "" && e.FileExist != policy.Move {
		return errors.New(errors.ErrConfigInvalid,
			"you must configure fileExist=Move when moveExisting has been set")
	}

	if e.DoneFileName != "" && strings.TrimSpace(e.DoneFileName) == "" {
		return errors.New(errors.ErrConfigInvalid, "doneFileName must not be blank")
	}

	return nil
}
