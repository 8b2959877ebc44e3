// Package peakram measures the memory and wall-clock cost of evaluating a
// sequence of deferred units of work, reporting per unit the elapsed time,
// the net memory retained after evaluation, and the peak memory transiently
// allocated during evaluation.
//
// For each unit, in input order, the runner forces a full collection pass
// and rebases the accounting service's peak watermark (the baseline), times
// the unit's evaluation, drops its own reference to the produced value,
// forces a second collection pass, and reports the current/peak deltas
// between the two snapshots. Only the deltas are meaningful: absolute
// readings include everything else live in the process.
//
// Net memory can legitimately be negative when a unit (plus the closing
// collection) frees more than it allocated. It is reported as-is.
//
// The accounting service is process-wide, non-reentrant state. Units run
// strictly one at a time, and a measurement run must not overlap with other
// measurement runs or with code that forces collections, or the readings
// will be corrupted by cross-talk. This is a caller obligation; it is not
// enforced. There is no cancellation: a unit that never returns blocks the
// run forever.
package peakram
