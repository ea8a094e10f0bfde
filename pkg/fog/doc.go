// Package fog holds the authoritative set of painted fog cells.
//
// # Overview
//
// The Store maps grid coordinates to the user who painted them. It is the
// only mutable state in the engine: segmentation, boundary classification,
// and contour generation all recompute their output from the current cell
// set on every invocation.
//
// Mutations are total functions: painting an already-painted cell overwrites
// its creator (last writer wins), erasing an absent cell is a no-op, and an
// unauthorized erase silently skips the cell. The single access-control rule
// in the engine lives in [Store.EraseRect]: a cell is removed only when the
// requester painted it or the requester is privileged.
//
// # Determinism
//
// [Store.Coords] returns cells in canonical scan order (row, then column)
// and [Store.Hash] produces a content hash of the canonical serialization.
// Both are independent of insertion order and map iteration, so they can
// safely key memoization caches.
//
// # Concurrency
//
// A Store is not goroutine-safe. The collaborating host (see pkg/session)
// serializes access; the engine itself is single-threaded by design.
package fog
