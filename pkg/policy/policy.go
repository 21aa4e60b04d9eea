// Package policy decides what happens when a publication target
// already exists. The decision is a pure function of the configured
// policy and the existence check, returning exactly one action.
package policy

import (
	"strings"

	"github.com/arthur-debert/seqfile/pkg/errors"
)

// Policy is the configured rule for handling a pre-existing file at
// the target path.
type Policy int

const (
	// Override replaces the existing file. This is the default.
	Override Policy = iota

	// Ignore leaves the existing file alone and reports the operation
	// as successful without writing anything.
	Ignore

	// Fail aborts the operation when the target exists.
	Fail

	// Move relocates the existing file to a templated destination
	// before the new file is published.
	Move

	// TryRename skips all existence pre-checks and lets the rename
	// primitive decide; its contract covers rename-if-absent
	// semantics.
	TryRename

	// Append appends the payload to an existing target. Incompatible
	// with temp-and-rename publication.
	Append
)

// String returns the canonical policy name.
func (p Policy) String() string {
	switch p {
	case Override:
		return "Override"
	case Ignore:
		return "Ignore"
	case Fail:
		return "Fail"
	case Move:
		return "Move"
	case TryRename:
		return "TryRename"
	case Append:
		return "Append"
	default:
		return "Unknown"
	}
}

// Parse converts a configuration string into a Policy,
// case-insensitively. An empty string yields the default Override.
func Parse(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return Override, nil
	case "ignore":
		return Ignore, nil
	case "fail":
		return Fail, nil
	case "move":
		return Move, nil
	case "tryrename":
		return TryRename, nil
	case "append":
		return Append, nil
	default:
		return Override, errors.Newf(errors.ErrConfigInvalid, "unknown fileExist policy: %q", s)
	}
}

// Action is the single outcome of resolving a policy against an
// existence check.
type Action int

const (
	// Proceed means write as planned, no conflict handling needed.
	Proceed Action = iota

	// SkipSilently means leave the target untouched and report
	// success.
	SkipSilently

	// FailExisting means abort with a target-exists error.
	FailExisting

	// MoveThenProceed means relocate the existing target first.
	MoveThenProceed

	// DeleteThenProceed means delete the existing target first.
	DeleteThenProceed
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case SkipSilently:
		return "skip"
	case FailExisting:
		return "fail"
	case MoveThenProceed:
		return "move"
	case DeleteThenProceed:
		return "delete"
	default:
		return "unknown"
	}
}

// Resolve returns the one action to take for policy p given whether
// the target exists. It is deterministic in (p, targetExists) and has
// no side effects.
func Resolve(p Policy, targetExists bool) Action {
	if !targetExists {
		return Proceed
	}
	switch p {
	case Ignore:
		return SkipSilently
	case Fail:
		return FailExisting
	case Move:
		return MoveThenProceed
	case Override:
		return DeleteThenProceed
	case TryRename, Append:
		// The write and rename primitives own the conflict semantics
		// for these two.
		return Proceed
	default:
		return Proceed
	}
}
