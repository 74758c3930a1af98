package queue

import "errors"

var (
	// ErrMissingCommand is returned by Enqueue when command is empty.
	ErrMissingCommand = errors.New("command is required")

	// ErrNotFound is returned by DLQRetry when no job with the given
	// id exists.
	ErrNotFound = errors.New("job not found")

	// ErrNotInDLQ is returned by DLQRetry when the job exists but is
	// not currently in the Dead state.
	ErrNotInDLQ = errors.New("job is not in the dead letter queue")
)
