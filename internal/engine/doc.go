// Package engine implements the calendar reconciliation core.
//
// The engine merges two independently sourced record streams - coach-planned
// training sessions and athlete-recorded completed activities - into a
// deterministic per-day view: resolved pairings, execution states,
// plan-vs-actual deltas, duplicate groups with a total display order, and
// schedule conflicts for proposed mutations.
//
// ARCHITECTURE:
//
// Pure Synchronous Core:
// Every function is a synchronous transformation over in-memory collections.
// No I/O, no persistence, no shared mutable state, no locks. Identical
// inputs always yield identical outputs; callers memoize results keyed on
// input identity and rely on that.
//
// Pipeline:
//  1. ResolvePairings matches sessions to activities by explicit links only
//  2. Classify maps each (planned?, activity?) pair to an execution state
//  3. Reconciler assembles per-day summaries in a fixed three-pass order
//  4. GroupItems / SortItems produce duplicate groups and the display order
//  5. DetectConflicts validates proposed schedule mutations
//
// DETERMINISM:
//
// Wall-clock time never enters the engine except through the single
// explicit today parameter, evaluated once per reconciliation pass. All
// candidate scans iterate over id-sorted copies so output is invariant
// under any permutation of the input slices. Display ordering ends in an
// id tie-break, so no two items ever compare equal.
package engine
