package store

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

func createJobsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*jobModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createKVTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*kvModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createStateRetryIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_state_retry").
		Column("state", "next_retry_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createStateCreatedIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_state_created").
		Column("state", "created_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createStateUpdatedIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_state_updated").
		Column("state", "updated_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func initSchema(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := createJobsTable(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createKVTable(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createStateRetryIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createStateCreatedIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createStateUpdatedIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

// InitSchema creates the jobs and kv tables and their indexes, if they
// do not already exist. It runs inside a single transaction and is
// idempotent; it performs no destructive migrations.
func InitSchema(ctx context.Context, db *bun.DB) error {
	return initSchema(ctx, db)
}
