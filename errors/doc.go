// Package errors provides the unified error type used across kuma.
//
// Errors carry a machine-readable code so that callers can decide how a
// failure surfaces: configuration and malformed-input errors abort the
// invocation, media failures are converted to inline text markers, and
// delivery failures are reported back to the invoking user without
// aborting anything.
package errors
