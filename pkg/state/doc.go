// Package state holds the immutable snapshot of a single form and the reducer
// that moves it from one snapshot to the next. Snapshots are plain values:
// every transition returns a fresh FormState and never writes into maps or
// slices reachable from an earlier one, so callers may keep old snapshots
// around for comparison or rollback.
package state
