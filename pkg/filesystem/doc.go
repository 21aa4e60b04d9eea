// Package filesystem provides implementations of the types.FS
// collaborator interface: the real OS filesystem for production use
// and an afero-backed one for tests and embedding.
package filesystem
