package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/job"
	"github.com/TamannaDash/queuectl/supervisor"
)

func runStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	pidDir := pidDirFlag(fs)
	stuckOverride := fs.Float64("stuck-timeout", 0, "override stuck-timeout-seconds for this run's recovery sweep")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := config.New(s)

	stuckSeconds, err := cfg.StuckTimeoutSecondsValue(ctx)
	if err != nil {
		return err
	}
	stuckTimeout := time.Duration(stuckSeconds) * time.Second
	if *stuckOverride > 0 {
		stuckTimeout = time.Duration(*stuckOverride * float64(time.Second))
	}

	st, err := supervisor.Collect(ctx, q, *pidDir, stuckTimeout)
	if err != nil {
		return err
	}

	fmt.Println("counts:")
	for _, state := range []job.State{job.Pending, job.Processing, job.Completed, job.Dead} {
		fmt.Printf("  %-10s %d\n", state, st.Counts[state])
	}

	fmt.Println("workers:")
	if len(st.Live) == 0 {
		fmt.Println("  (none)")
	}
	for _, l := range st.Live {
		fmt.Printf("  %s\tpid=%d\n", l.ID, l.PID)
	}
	return nil
}
