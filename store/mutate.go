package store

import (
	"context"
	"strings"
	"time"

	"github.com/TamannaDash/queuectl/job"
	"github.com/uptrace/bun"
)

// InsertJob persists a new job in the Pending state. It fails with
// ErrConflict if a job with the same id already exists.
func (s *Store) InsertJob(ctx context.Context, jb *job.Job, now time.Time) error {
	model := fromJob(jb, now)
	_, err := s.db.NewInsert().
		Model(model).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint violations as plain text
	// errors; there is no typed sentinel to match against.
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}

// AtomicClaim selects a single Pending, eligible job (NextRetryAt unset
// or in the past), ordered by CreatedAt ascending for strict FIFO, and
// transitions it to Processing in the same statement. Concurrent
// callers are guaranteed disjoint results: the selection and the
// transition happen in one UPDATE ... WHERE id IN (subquery) ...
// RETURNING statement, never a SELECT followed by a separate UPDATE.
//
// AtomicClaim returns (nil, nil) if no eligible job exists.
func (s *Store) AtomicClaim(ctx context.Context, workerID string, now time.Time) (*job.Job, error) {
	subQuery := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		Where("state = ?", job.Pending).
		WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("next_retry_at IS NULL").
				WhereOr("next_retry_at <= ?", now)
		}).
		Order("created_at ASC").
		Limit(1)

	var models []jobModel
	err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("claimed_by = ?", workerID).
		Set("next_retry_at = NULL").
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &models)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].toJob(), nil
}

// Complete transitions a job from Processing to Completed, incrementing
// Attempts for the run that just finished. It requires the job's
// current state to be Processing; otherwise ErrIllegalTransition is
// returned and no row is changed.
func (s *Store) Complete(ctx context.Context, id string, now time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Completed).
		Set("claimed_by = NULL").
		Set("attempts = attempts + 1").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return ErrIllegalTransition
	}
	return nil
}

// FailRetry transitions a Processing job back to Pending, scheduling
// it for nextRetryAt, incrementing Attempts and recording error as
// ErrorMessage. It requires the job's current state to be Processing.
func (s *Store) FailRetry(ctx context.Context, id string, nextRetryAt time.Time, errMsg string, now time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("claimed_by = NULL").
		Set("attempts = attempts + 1").
		Set("next_retry_at = ?", nextRetryAt).
		Set("error_message = ?", errMsg).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return ErrIllegalTransition
	}
	return nil
}

// FailDead transitions a Processing job to Dead, incrementing Attempts
// and recording error as ErrorMessage. It requires the job's current
// state to be Processing.
func (s *Store) FailDead(ctx context.Context, id string, errMsg string, now time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Dead).
		Set("claimed_by = NULL").
		Set("attempts = attempts + 1").
		Set("error_message = ?", errMsg).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return ErrIllegalTransition
	}
	return nil
}

// Revive resets a Dead job back to Pending: Attempts=0, NextRetryAt and
// ErrorMessage cleared. It requires the job's current state to be Dead.
func (s *Store) Revive(ctx context.Context, id string, now time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("attempts = 0").
		Set("next_retry_at = NULL").
		Set("error_message = NULL").
		Set("claimed_by = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Dead).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return ErrIllegalTransition
	}
	return nil
}

// StuckTransition decides, for one recovered stuck job, whether it
// should be retried (ErrorMessage + NextRetryAt, attempts left) or
// killed (retry budget exhausted). The queue layer supplies this
// policy; ResetStuck calls it once per stuck row it selected, before
// that row's own guarded update.
type StuckTransition func(attempts, maxRetries uint32) (nextRetryAt *time.Time, dead bool)

// ResetStuck recovers jobs stuck in Processing with UpdatedAt older
// than olderThan: "stuck" crashed-worker recovery and execution-timeout
// recovery are treated identically, both driven through decide exactly
// as a normal failed attempt would be (fail_retry or fail_dead). It
// returns the number of jobs recovered.
func (s *Store) ResetStuck(ctx context.Context, olderThan time.Time, now time.Time, decide StuckTransition) (int, error) {
	var stuck []jobModel
	err := s.db.NewSelect().
		Model(&stuck).
		Where("state = ?", job.Processing).
		Where("updated_at < ?", olderThan).
		Scan(ctx)
	if err != nil {
		return 0, err
	}
	const stuckError = "stuck beyond threshold"
	recovered := 0
	for _, jm := range stuck {
		nextRetryAt, dead := decide(jm.Attempts, jm.MaxRetries)
		var txErr error
		if dead {
			txErr = s.FailDead(ctx, jm.Id, stuckError, now)
		} else {
			txErr = s.FailRetry(ctx, jm.Id, *nextRetryAt, stuckError, now)
		}
		if txErr != nil {
			// Row transitioned concurrently (e.g. its owning worker
			// reported just before the sweep ran) — not an error for
			// the sweep as a whole, just nothing to recover here.
			continue
		}
		recovered++
	}
	return recovered, nil
}
