// Package form is the public face of the engine. A Form owns one slot in a
// store.Store, seeds it from a seed.Declaration, and exposes named
// operations that each dispatch a single state action. Validation runs the
// validators lifted out of the declaration; Submit clears stale errors,
// validates, and only then runs the caller's operation.
//
// A Form is not safe for concurrent mutation from multiple goroutines in the
// sense that interleaved operations interleave their dispatches; each
// individual dispatch is atomic.
package form
