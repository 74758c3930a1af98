package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/TamannaDash/queuectl/execrunner"
	"github.com/TamannaDash/queuectl/internal"
	"github.com/TamannaDash/queuectl/queue"
)

// DefaultExecCeiling bounds a single job's execution time. It is a
// fixed, generous ceiling and not meant to be tuned per job.
const DefaultExecCeiling = time.Hour

// Config holds the fixed parameters for a single Worker.
type Config struct {
	// ID identifies this worker to Queue.Claim and must be unique among
	// concurrently running workers.
	ID string
	// PollInterval is how often the worker checks for a claimable job
	// when idle.
	PollInterval time.Duration
	// ExecCeiling overrides DefaultExecCeiling when non-zero.
	ExecCeiling time.Duration
}

// Worker polls a Queue for work, runs one job's command at a time
// through execrunner, and reports the outcome back.
type Worker struct {
	internal.Lifecycle

	id       string
	interval time.Duration
	ceiling  time.Duration
	queue    *queue.Queue
	log      *slog.Logger

	task internal.TimerTask
}

// New builds a Worker bound to q. log defaults to slog.Default() if nil.
func New(q *queue.Queue, cfg Config, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	ceiling := cfg.ExecCeiling
	if ceiling == 0 {
		ceiling = DefaultExecCeiling
	}
	return &Worker{
		id:       cfg.ID,
		interval: cfg.PollInterval,
		ceiling:  ceiling,
		queue:    q,
		log:      log.With("worker_id", cfg.ID),
	}
}

// Start begins the poll loop in the background. It returns
// internal.ErrDoubleStarted if the worker is already running.
//
// The first poll happens immediately, then every PollInterval
// thereafter. Because internal.TimerTask calls its handler
// synchronously and a single in-flight call blocks the next tick, at
// most one job is ever claimed, executed and reported at a time.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.Lifecycle.TryStart(); err != nil {
		return err
	}
	w.log.Info("worker starting", "poll_interval", w.interval, "exec_ceiling", w.ceiling)
	w.task.Start(ctx, w.tick, w.interval)
	return nil
}

// Stop requests the poll loop to stop claiming new jobs and waits up to
// timeout for any in-flight job to finish executing and being reported.
//
// Stop never interrupts a running command: a job claimed before the
// stop request is let to finish, so timeout should be comfortably
// larger than the exec ceiling if a clean shutdown matters more than a
// fast one.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.Lifecycle.TryStop(timeout, w.task.Stop)
}

func (w *Worker) tick(ctx context.Context) {
	jb, err := w.queue.Claim(ctx, w.id)
	if err != nil {
		w.log.Error("claim failed", "err", err)
		return
	}
	if jb == nil {
		return
	}

	log := w.log.With("job_id", jb.Id, "attempt", jb.Attempts+1)
	log.Info("job claimed", "command", jb.Command)

	runErr := execrunner.Run(jb.Command, w.ceiling)
	if runErr != nil {
		log.Warn("job failed", "err", runErr)
	} else {
		log.Info("job succeeded")
	}

	// Stop cancels ctx while a job may still be running; the report must
	// still land, so it is made with a context that is not cancelled.
	if err := w.queue.Report(context.WithoutCancel(ctx), jb, runErr); err != nil {
		log.Error("report failed", "err", err)
	}
}
