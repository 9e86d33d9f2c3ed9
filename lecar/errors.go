package lecar

import "errors"

// ErrNoSuchKey is the sentinel a front-end maps to a 404: the key is absent
// from the main store and not recoverable via a ghost hit. The core itself
// never returns it directly (Get/GetByIndex report absence via a bool), but
// wrappers that prefer the error-returning idiom can use it uniformly.
var ErrNoSuchKey = errors.New("lecar: no such key")

// invariantViolation aborts the process with a diagnostic. Per the design,
// a broken structural invariant (e.g. a key resident in both a ghost
// history and the main store) is a programming error with no recoverable
// runtime handling.
func invariantViolation(msg string) {
	panic("lecar: invariant violation: " + msg)
}
