package queue_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/job"
	"github.com/TamannaDash/queuectl/queue"
	"github.com/TamannaDash/queuectl/store"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

func newTestQueue(t *testing.T) *queue.Queue {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	ctx := context.Background()
	if err := store.InitSchema(ctx, db); err != nil {
		t.Fatal(err)
	}
	s := store.NewFromDB(db)
	return queue.New(s, config.New(s))
}

func TestEnqueueRejectsEmptyCommand(t *testing.T) {
	q := newTestQueue(t)
	if _, err := q.Enqueue(context.Background(), "", "", nil); !errors.Is(err, queue.ErrMissingCommand) {
		t.Fatalf("expected ErrMissingCommand, got %v", err)
	}
}

func TestEnqueueDefaultsMaxRetriesFromConfig(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	jb, err := q.Enqueue(ctx, "/bin/true", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if jb.MaxRetries != 3 {
		t.Fatalf("expected default max-retries=3, got %d", jb.MaxRetries)
	}
}

func TestEnqueuePerJobOverrideWins(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	override := uint32(7)
	jb, err := q.Enqueue(ctx, "/bin/true", "", &override)
	if err != nil {
		t.Fatal(err)
	}
	if jb.MaxRetries != 7 {
		t.Fatalf("expected override max-retries=7, got %d", jb.MaxRetries)
	}
}

func TestReportSuccessCompletes(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	jb, err := q.Enqueue(ctx, "/bin/true", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	claimed, err := q.Claim(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil || claimed.Id != jb.Id {
		t.Fatalf("expected to claim %s, got %+v", jb.Id, claimed)
	}
	if err := q.Report(ctx, claimed, nil); err != nil {
		t.Fatal(err)
	}

	got, err := q.Get(ctx, jb.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Completed {
		t.Fatalf("expected Completed, got %v", got.State)
	}
}

func TestReportFailureSchedulesRetry(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	maxRetries := uint32(1)
	jb, err := q.Enqueue(ctx, "false", "", &maxRetries)
	if err != nil {
		t.Fatal(err)
	}

	claimed, err := q.Claim(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if err := q.Report(ctx, claimed, errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	got, err := q.Get(ctx, jb.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Pending || got.NextRetryAt == nil {
		t.Fatalf("expected Pending with a scheduled retry, got %+v", got)
	}

	claimed2, err := q.Claim(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if claimed2 != nil {
		t.Fatal("expected claim to respect next_retry_at and return nothing yet")
	}
}

func TestDLQRetryRequiresDeadState(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	jb, err := q.Enqueue(ctx, "/bin/true", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := q.DLQRetry(ctx, jb.Id); !errors.Is(err, queue.ErrNotInDLQ) {
		t.Fatalf("expected ErrNotInDLQ, got %v", err)
	}
	if err := q.DLQRetry(ctx, "nonexistent"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDLQRetryRevivesDeadJob(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	maxRetries := uint32(0)
	jb, err := q.Enqueue(ctx, "false", "", &maxRetries)
	if err != nil {
		t.Fatal(err)
	}
	claimed, err := q.Claim(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if err := q.Report(ctx, claimed, errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	got, err := q.Get(ctx, jb.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Dead {
		t.Fatalf("expected Dead, got %v", got.State)
	}

	if err := q.DLQRetry(ctx, jb.Id); err != nil {
		t.Fatal(err)
	}
	revived, err := q.Get(ctx, jb.Id)
	if err != nil {
		t.Fatal(err)
	}
	if revived.State != job.Pending || revived.Attempts != 0 {
		t.Fatalf("expected revived Pending with attempts=0, got %+v", revived)
	}
}
