// Package store provides a bun-based SQL storage implementation for
// queuectl's job queue.
//
// # Overview
//
// Store persists jobs and configuration durably and exposes the
// transactional primitives the queue and worker layers build on:
// InsertJob, AtomicClaim, Complete, FailRetry, FailDead, Revive,
// ResetStuck, List, CountsByState, Get, ConfigGet and ConfigSet.
//
// It is backed by SQLite through github.com/uptrace/bun and
// modernc.org/sqlite, a pure-Go driver requiring no cgo toolchain.
// Any other bun-supported dialect with equivalent transactional
// guarantees may be substituted by changing Open's dialect.
//
// # Concurrency Model
//
// AtomicClaim is implemented as a single UPDATE ... WHERE id IN
// (subquery) statement with RETURNING, so the selection of the
// claim-eligible row and its transition to Processing happen inside one
// statement: two concurrent callers can never be handed the same row.
//
// Every other state-mutating method guards its UPDATE with a precondition
// on the job's current state (state = ?) and checks RowsAffected;
// a zero-row update means the precondition did not hold and
// ErrIllegalTransition is returned. The caller's in-memory snapshot of a
// Job is never trusted as authoritative.
//
// SQLite is opened with a single connection and a busy_timeout pragma
// (see Open), so that transient write contention between workers
// surfaces as latency rather than errors, per the contract that
// implementations must provide a busy-wait retry.
//
// # Schema
//
// InitSchema creates the "jobs" and "kv" tables (if not already present)
// plus the indexes AtomicClaim, List and ResetStuck rely on. It is
// idempotent and runs inside a single transaction; it never performs
// destructive migrations.
//
// # Limitations
//
// The database file must live on a filesystem supporting fsync; remote
// or network filesystems are outside the contract. Schema evolution
// beyond additive, idempotent changes must be handled externally.
package store
