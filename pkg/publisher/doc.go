// Package publisher implements sequenced, crash-safe file
// publication: write-to-temp with atomic rename, configurable conflict
// handling for pre-existing targets, a predecessor gate that enforces
// strict ordering between successive writes, and an optional done file
// signalling downstream consumers that the payload is complete.
//
// A Publisher holds no state across calls; all coordination happens
// through the filesystem itself. Callers must serialize concurrent
// publishes to the same target.
package publisher
