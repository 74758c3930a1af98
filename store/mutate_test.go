package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/TamannaDash/queuectl/job"
	"github.com/TamannaDash/queuectl/store"
)

func TestInsertAndClaim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "j1", Command: "/bin/true"}, now); err != nil {
		t.Fatal(err)
	}

	claimed, err := s.AtomicClaim(ctx, "w1", now)
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil {
		t.Fatal("expected a job, got none")
	}
	if claimed.State != job.Processing {
		t.Fatalf("expected Processing, got %v", claimed.State)
	}
	if claimed.ClaimedBy == nil || *claimed.ClaimedBy != "w1" {
		t.Fatalf("expected claimed_by=w1, got %v", claimed.ClaimedBy)
	}

	// No more eligible jobs.
	none, err := s.AtomicClaim(ctx, "w2", now)
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatalf("expected no job, got %v", none)
	}
}

// TestConcurrentAtomicClaimYieldsDisjointJobs drives 20 jobs against 5
// concurrent claimants the way a real deployment's worker processes
// race each other, and asserts no job is ever handed to two of them.
func TestConcurrentAtomicClaimYieldsDisjointJobs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	const numJobs = 20
	const numWorkers = 5

	for i := 0; i < numJobs; i++ {
		id := fmt.Sprintf("job-%d", i)
		if err := s.InsertJob(ctx, &job.Job{Id: id, Command: "/bin/true"}, now); err != nil {
			t.Fatal(err)
		}
	}

	var mu sync.Mutex
	claimedBy := make(map[string]string) // job id -> worker id
	errs := make(chan error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		workerID := fmt.Sprintf("w%d", w)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				jb, err := s.AtomicClaim(ctx, workerID, now)
				if err != nil {
					errs <- err
					return
				}
				if jb == nil {
					return
				}
				mu.Lock()
				if prev, ok := claimedBy[jb.Id]; ok {
					mu.Unlock()
					errs <- fmt.Errorf("job %s claimed by both %s and %s", jb.Id, prev, workerID)
					return
				}
				claimedBy[jb.Id] = workerID
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
	if len(claimedBy) != numJobs {
		t.Fatalf("expected all %d jobs claimed exactly once, got %d", numJobs, len(claimedBy))
	}
}

func TestInsertConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "dup", Command: "/bin/true"}, now); err != nil {
		t.Fatal(err)
	}
	err := s.InsertJob(ctx, &job.Job{Id: "dup", Command: "/bin/true"}, now)
	if err != store.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestClaimRespectsNextRetryAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "j1", Command: "/bin/false"}, now); err != nil {
		t.Fatal(err)
	}
	jb, err := s.AtomicClaim(ctx, "w1", now)
	if err != nil || jb == nil {
		t.Fatal("expected claim", err)
	}
	future := now.Add(time.Hour)
	if err := s.FailRetry(ctx, jb.Id, future, "boom", now); err != nil {
		t.Fatal(err)
	}

	none, err := s.AtomicClaim(ctx, "w2", now)
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatal("expected job to be ineligible while next_retry_at is in the future")
	}

	eligible, err := s.AtomicClaim(ctx, "w2", future.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if eligible == nil {
		t.Fatal("expected job to become eligible once next_retry_at has passed")
	}
}

func TestCompleteRequiresProcessing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "j1", Command: "/bin/true"}, now); err != nil {
		t.Fatal(err)
	}
	if err := s.Complete(ctx, "j1", now); err != store.ErrIllegalTransition {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}

	jb, _ := s.AtomicClaim(ctx, "w1", now)
	if err := s.Complete(ctx, jb.Id, now); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(ctx, jb.Id)
	if got.State != job.Completed {
		t.Fatalf("expected Completed, got %v", got.State)
	}
	if got.Attempts != 1 {
		t.Fatalf("expected attempts=1, got %d", got.Attempts)
	}
	if got.ClaimedBy != nil {
		t.Fatal("expected claimed_by cleared")
	}
}

func TestFailDeadAndRevive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "j1", Command: "/bin/false", MaxRetries: 0}, now); err != nil {
		t.Fatal(err)
	}
	jb, _ := s.AtomicClaim(ctx, "w1", now)
	if err := s.FailDead(ctx, jb.Id, "boom", now); err != nil {
		t.Fatal(err)
	}
	dead, _ := s.Get(ctx, jb.Id)
	if dead.State != job.Dead || dead.Attempts != 1 {
		t.Fatalf("expected Dead/attempts=1, got %v/%d", dead.State, dead.Attempts)
	}

	if err := s.Revive(ctx, jb.Id, now); err != nil {
		t.Fatal(err)
	}
	revived, _ := s.Get(ctx, jb.Id)
	if revived.State != job.Pending || revived.Attempts != 0 {
		t.Fatalf("expected Pending/attempts=0 after revive, got %v/%d", revived.State, revived.Attempts)
	}
	if revived.ErrorMessage != nil {
		t.Fatal("expected error_message cleared on revive")
	}
}

func TestResetStuck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := s.InsertJob(ctx, &job.Job{Id: "j1", Command: "sleep 10", MaxRetries: 3}, now); err != nil {
		t.Fatal(err)
	}
	jb, _ := s.AtomicClaim(ctx, "w1", now)
	if jb == nil {
		t.Fatal("expected claim")
	}

	olderThan := now.Add(time.Hour)
	decide := func(attempts, maxRetries uint32) (*time.Time, bool) {
		if attempts+1 > maxRetries {
			return nil, true
		}
		next := now.Add(time.Second)
		return &next, false
	}

	recovered, err := s.ResetStuck(ctx, olderThan, now.Add(2*time.Hour), decide)
	if err != nil {
		t.Fatal(err)
	}
	if recovered != 1 {
		t.Fatalf("expected 1 recovered, got %d", recovered)
	}

	got, _ := s.Get(ctx, jb.Id)
	if got.State != job.Pending {
		t.Fatalf("expected Pending after stuck recovery, got %v", got.State)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "stuck beyond threshold" {
		t.Fatalf("expected stuck error message, got %v", got.ErrorMessage)
	}
}
