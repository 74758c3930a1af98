package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Pending    (retry, via Store.FailRetry)
//	Processing -> Dead
//	Dead       -> Pending    (DLQ revival, via Store.Revive)
//
// Unknown is reserved as a zero value and is used as a "no filter"
// sentinel by List; it is never persisted as a job's actual state.
//
// "failed" is deliberately absent: a failed-but-retryable job is stored
// as Pending with a future NextRetryAt, never as a distinct state.
type State uint8

const (
	// Unknown represents an unspecified state. Used only for filtering.
	Unknown State = iota

	// Pending indicates the job is eligible for claim once NextRetryAt,
	// if set, has passed.
	Pending

	// Processing indicates the job has been claimed by a worker and is
	// not eligible for claim by any other worker.
	Processing

	// Completed indicates successful execution. Terminal.
	Completed

	// Dead indicates the retry budget was exhausted. Terminal until an
	// explicit DLQ revival.
	Dead
)

func stateToString(s State) string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func stateFromString(s string) (State, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "dead":
		return Dead, nil
	case "unknown", "":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("unknown job state: %s", s)
	}
}

// ParseState converts a string representation of a state into a State
// value. Recognized values are "pending", "processing", "completed",
// "dead" and "unknown". An error is returned for anything else.
func ParseState(s string) (State, error) {
	return stateFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(stateToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	state, err := stateFromString(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// String returns the canonical string representation of the state.
func (s State) String() string {
	return stateToString(s)
}
