package types

// Request carries one payload through a single publish call. It is
// consumed for the duration of that call only; nothing in it is
// retained afterwards.
type Request struct {
	// FileName is the logical name of the artifact, relative to the
	// endpoint directory unless absolute.
	FileName string

	// Body is the payload to publish. The publisher never inspects it;
	// it is handed verbatim to the filesystem write primitive.
	Body []byte

	// PreviousFileName optionally names a file that must no longer
	// exist in the target directory before this write may proceed.
	// It enforces strict ordering between successive publications.
	PreviousFileName string
}

// Outcome classifies how a publish call ended from the caller's point
// of view.
type Outcome int

const (
	// Failed means nothing was published. It is deliberately the zero
	// value so a Result returned alongside an error never reads as a
	// success.
	Failed Outcome = iota

	// Published means the target was written and, if configured, the
	// done file as well.
	Published

	// Skipped means an existing target was left untouched under the
	// Ignore policy. The call is reported as successful.
	Skipped

	// SentinelFailed means the target itself was published but the
	// done file could not be written. Callers must treat this as a
	// distinct partial failure, not a full success.
	SentinelFailed
)

// String returns the outcome name for logs and CLI output.
func (o Outcome) String() string {
	switch o {
	case Failed:
		return "failed"
	case Published:
		return "published"
	case Skipped:
		return "skipped"
	case SentinelFailed:
		return "sentinel-failed"
	default:
		return "unknown"
	}
}

// Result reports the observable outcome of a publish call.
type Result struct {
	// FileNameProduced is the name the artifact actually ended up
	// under. It can differ from the logical target when the rename
	// primitive altered it.
	FileNameProduced string

	Outcome Outcome
}
