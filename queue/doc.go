// Package queue implements the retry/backoff state machine described by
// the job lifecycle: Enqueue, Claim, Report, DLQList and DLQRetry.
//
// Queue is a thin domain layer over store.Store. It decides retry
// policy (Report) and enforces the two DLQ preconditions (ErrNotFound,
// ErrNotInDLQ) that a bare store-level Revive call cannot distinguish
// on its own; every actual state mutation is still performed, and its
// precondition re-checked, inside a single Store transaction.
package queue
