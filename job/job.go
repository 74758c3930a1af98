package job

import "time"

// Job represents a unit of work managed by the queue.
//
// Id is either caller-supplied at enqueue time or generated with NewID.
// It is never reassigned.
//
// Command is the opaque shell command line to execute.
//
// CreatedAt records when the job was enqueued. UpdatedAt records the
// last state transition or field mutation.
//
// State is the current lifecycle state. Attempts counts how many times
// the job has completed an execution attempt (successful or not).
// MaxRetries is the retry budget captured at enqueue time.
//
// NextRetryAt, when set, is the earliest time the job becomes eligible
// for claim again; it is cleared on successful claim.
//
// ErrorMessage holds a short diagnostic from the last failed attempt.
// ClaimedBy holds the worker id currently owning the job while
// Processing; it is cleared on any terminal or Pending transition.
//
// Job values returned by Store/Queue methods are snapshots. Mutating
// them directly does not affect the underlying queue state.
type Job struct {
	Id         string
	Command    string
	State      State
	Attempts   uint32
	MaxRetries uint32

	CreatedAt time.Time
	UpdatedAt time.Time

	NextRetryAt  *time.Time
	ErrorMessage *string
	ClaimedBy    *string
}
