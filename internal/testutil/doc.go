// Package testutil provides deterministic helpers shared by tests and the
// session harness: predictable record IDs and record fixtures.
package testutil
