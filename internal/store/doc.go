// Package store provides SQLite-backed snapshot storage for calendar
// records.
//
// The engine itself is pure and persistence-free; it expects callers to
// supply a consistent snapshot of planned sessions and completed activities
// per reconciliation pass. This store is that caller-side snapshot: the
// import pipeline writes normalized records here, and the CLI reads a day
// range back out to feed the engine. Nothing in internal/engine imports
// this package.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// All reads are ordered by (date ASC, id ASC COLLATE BINARY) so a snapshot
// loads in the same order every time.
package store
