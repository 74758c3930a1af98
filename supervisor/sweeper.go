package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/TamannaDash/queuectl/internal"
	"github.com/TamannaDash/queuectl/queue"
)

// StuckSweeper periodically recovers jobs stuck in the processing
// state: a single internal.TimerTask driving one repeated action, with
// the same start/stop lifecycle every background task in this codebase
// uses.
type StuckSweeper struct {
	internal.Lifecycle

	queue    *queue.Queue
	timeout  time.Duration
	interval time.Duration
	log      *slog.Logger
	task     internal.TimerTask
}

// NewStuckSweeper builds a sweeper that, every interval, recovers jobs
// whose updated_at is older than timeout.
func NewStuckSweeper(q *queue.Queue, timeout, interval time.Duration, log *slog.Logger) *StuckSweeper {
	if log == nil {
		log = slog.Default()
	}
	return &StuckSweeper{
		queue:    q,
		timeout:  timeout,
		interval: interval,
		log:      log,
	}
}

func (s *StuckSweeper) sweep(ctx context.Context) {
	n, err := s.queue.ResetStuck(ctx, s.timeout)
	if err != nil {
		s.log.Error("stuck-job sweep failed", "err", err)
		return
	}
	if n > 0 {
		s.log.Info("recovered stuck jobs", "count", n)
	}
}

// Start begins the periodic sweep in the background.
func (s *StuckSweeper) Start(ctx context.Context) error {
	if err := s.Lifecycle.TryStart(); err != nil {
		return err
	}
	s.task.Start(ctx, s.sweep, s.interval)
	return nil
}

// Stop terminates the sweep, waiting up to timeout for the current
// sweep to finish.
func (s *StuckSweeper) Stop(timeout time.Duration) error {
	return s.Lifecycle.TryStop(timeout, s.task.Stop)
}
