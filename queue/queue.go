package queue

import (
	"context"
	"time"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/job"
	"github.com/TamannaDash/queuectl/store"
)

// Queue enforces the job state machine on top of a Store.
type Queue struct {
	store *store.Store
	cfg   *config.Config
}

// New builds a Queue backed by s, consulting cfg for enqueue-time and
// retry defaults.
func New(s *store.Store, cfg *config.Config) *Queue {
	return &Queue{store: s, cfg: cfg}
}

// Enqueue creates a new job in the Pending state.
//
// If id is empty, a UUID is generated. If maxRetries is nil, the
// current max-retries config value is captured; the per-job override
// always wins over the config default, even when both are supplied.
func (q *Queue) Enqueue(ctx context.Context, command string, id string, maxRetries *uint32) (*job.Job, error) {
	if command == "" {
		return nil, ErrMissingCommand
	}
	if id == "" {
		id = job.NewID()
	}
	retries, err := q.resolveMaxRetries(ctx, maxRetries)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	jb := &job.Job{
		Id:         id,
		Command:    command,
		State:      job.Pending,
		MaxRetries: retries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := q.store.InsertJob(ctx, jb, now); err != nil {
		return nil, err
	}
	return jb, nil
}

func (q *Queue) resolveMaxRetries(ctx context.Context, override *uint32) (uint32, error) {
	if override != nil {
		return *override, nil
	}
	return q.cfg.MaxRetriesValue(ctx)
}

// Claim delegates to Store.AtomicClaim using the current wall-clock
// time, returning (nil, nil) when no job is eligible.
func (q *Queue) Claim(ctx context.Context, workerID string) (*job.Job, error) {
	return q.store.AtomicClaim(ctx, workerID, time.Now())
}

// Report records the outcome of executing jb, which must be the
// snapshot returned by Claim (its Attempts and MaxRetries values drive
// the retry-vs-dead decision).
//
// runErr nil means the command succeeded and the job is marked
// Completed. A non-nil runErr means the command failed: if the retry
// budget is not exhausted the job is rescheduled with an exponential
// backoff delay (backoff_base ^ (attempts+1) seconds); otherwise it is
// moved to Dead.
func (q *Queue) Report(ctx context.Context, jb *job.Job, runErr error) error {
	now := time.Now()
	if runErr == nil {
		return q.store.Complete(ctx, jb.Id, now)
	}
	errMsg := runErr.Error()
	if jb.Attempts+1 <= jb.MaxRetries {
		base, err := q.cfg.BackoffBaseValue(ctx)
		if err != nil {
			return err
		}
		delay := time.Duration(computeBackoffSeconds(base, jb.Attempts)) * time.Second
		return q.store.FailRetry(ctx, jb.Id, now.Add(delay), errMsg, now)
	}
	return q.store.FailDead(ctx, jb.Id, errMsg, now)
}

// List returns jobs matching state (job.Unknown for no filter), up to
// limit (<=0 for no limit).
func (q *Queue) List(ctx context.Context, state job.State, limit int) ([]*job.Job, error) {
	return q.store.List(ctx, state, limit)
}

// Get returns the job identified by id, or (nil, nil) if it does not
// exist.
func (q *Queue) Get(ctx context.Context, id string) (*job.Job, error) {
	return q.store.Get(ctx, id)
}

// CountsByState aggregates job counts per state.
func (q *Queue) CountsByState(ctx context.Context) (map[job.State]int64, error) {
	return q.store.CountsByState(ctx)
}

// DLQList returns all jobs currently in the Dead state.
func (q *Queue) DLQList(ctx context.Context) ([]*job.Job, error) {
	return q.store.List(ctx, job.Dead, 0)
}

// DLQRetry revives a Dead job back to Pending with Attempts reset to
// zero. It fails with ErrNotFound if id does not exist, or ErrNotInDLQ
// if the job exists but is not currently Dead.
func (q *Queue) DLQRetry(ctx context.Context, id string) error {
	jb, err := q.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if jb == nil {
		return ErrNotFound
	}
	if jb.State != job.Dead {
		return ErrNotInDLQ
	}
	return q.store.Revive(ctx, id, time.Now())
}

// ResetStuck recovers jobs stuck in Processing with UpdatedAt older
// than the stuck timeout, routing each through the same retry-or-dead
// decision Report uses — crashed-worker recovery and execution-timeout
// recovery are not distinguished.
func (q *Queue) ResetStuck(ctx context.Context, stuckTimeout time.Duration) (int, error) {
	now := time.Now()
	base, err := q.cfg.BackoffBaseValue(ctx)
	if err != nil {
		return 0, err
	}
	decide := func(attempts, maxRetries uint32) (*time.Time, bool) {
		if attempts+1 > maxRetries {
			return nil, true
		}
		next := now.Add(time.Duration(computeBackoffSeconds(base, attempts)) * time.Second)
		return &next, false
	}
	return q.store.ResetStuck(ctx, now.Add(-stuckTimeout), now, decide)
}
