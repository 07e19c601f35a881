package ahocorasick

import "fmt"

// invariantViolation panics with a descriptive diagnostic. Internal
// invariant violations (a failure link left unset during a scan, a state
// that should exist but doesn't) are programming errors in this package,
// not recoverable data problems, so they are fatal rather than returned as
// errors.
func invariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("ahocorasick: internal invariant violation: "+format, args...))
}
