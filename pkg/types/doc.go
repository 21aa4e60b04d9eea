// Package types holds the shared contracts of the module: the FS
// abstraction the publisher writes through, and the request/result
// values that cross the public API boundary. It imports nothing from
// the rest of the module so every package can depend on it.
package types
