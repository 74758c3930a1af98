package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/supervisor"
	"github.com/TamannaDash/queuectl/worker"
)

func runWorkerStart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worker start", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	pidDir := pidDirFlag(fs)
	count := fs.Int("count", 1, "number of worker processes to start")
	pollInterval := fs.Float64("poll-interval", 0, "override poll-interval-seconds for the spawned workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 {
		return errors.New("--count must be >= 1")
	}

	binary, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve own executable: %w", err)
	}

	spawnCfg := supervisor.SpawnConfig{
		Binary:              binary,
		DBPath:              *dbPath,
		PidDir:              *pidDir,
		PollIntervalSeconds: *pollInterval,
	}
	ids, err := supervisor.Start(spawnCfg, *count, supervisor.DefaultStartWait)
	for _, id := range ids {
		fmt.Println(id)
	}
	return err
}

func runWorkerStop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worker stop", flag.ContinueOnError)
	pidDir := pidDirFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return supervisor.Stop(*pidDir, supervisor.DefaultStopGrace)
}

// runWorkerRun is the body of a spawned worker process. It is not
// meant to be invoked directly by an operator; "worker start" re-execs
// the current binary with this subcommand.
func runWorkerRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worker run", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	pidDir := pidDirFlag(fs)
	id := fs.String("id", "", "worker id, assigned by worker start")
	pollOverride := fs.Float64("poll-interval", 0, "override poll-interval-seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("worker run requires --id")
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := config.New(s)

	pollSeconds, err := cfg.PollIntervalSecondsValue(ctx)
	if err != nil {
		return err
	}
	if *pollOverride > 0 {
		pollSeconds = *pollOverride
	}

	stuckSeconds, err := cfg.StuckTimeoutSecondsValue(ctx)
	if err != nil {
		return err
	}
	stuckTimeout := time.Duration(stuckSeconds) * time.Second

	if err := supervisor.WriteLiveness(*pidDir, *id, os.Getpid()); err != nil {
		return fmt.Errorf("write liveness record: %w", err)
	}
	defer supervisor.RemoveLiveness(*pidDir, *id)

	runCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := worker.New(q, worker.Config{
		ID:           *id,
		PollInterval: time.Duration(pollSeconds * float64(time.Second)),
	}, nil)
	sweeper := supervisor.NewStuckSweeper(q, stuckTimeout, stuckTimeout, nil)

	if err := w.Start(runCtx); err != nil {
		return err
	}
	if err := sweeper.Start(runCtx); err != nil {
		return err
	}

	slog.InfoContext(runCtx, "worker running", "id", *id, "pid", os.Getpid())
	<-runCtx.Done()
	slog.InfoContext(context.Background(), "worker shutting down", "id", *id)

	if err := sweeper.Stop(5 * time.Second); err != nil {
		slog.Error("sweeper stop", "err", err)
	}
	// The exec ceiling bounds any in-flight job; give Stop enough room
	// beyond it to let a final report land before we give up waiting.
	return w.Stop(worker.DefaultExecCeiling + 10*time.Second)
}
