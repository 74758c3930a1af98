package store

import "errors"

var (
	// ErrConflict is returned by InsertJob when a job with the given id
	// already exists.
	ErrConflict = errors.New("job id already exists")

	// ErrIllegalTransition is returned when a state-mutating operation's
	// precondition on the job's current state does not hold (for
	// example, Complete called on a job that is not Processing). The
	// caller's in-memory snapshot is never trusted; every precondition
	// is re-checked inside the same transaction as the mutation.
	ErrIllegalTransition = errors.New("illegal job state transition")

	// ErrNotFound is returned when an operation references a job id
	// that does not exist in storage.
	ErrNotFound = errors.New("job not found")
)
