package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/TamannaDash/queuectl/job"
)

func printJobTable(jobs []*job.Job) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "id\tstate\tattempts\tmax_retries\tcreated_at\terror")
	for _, jb := range jobs {
		errMsg := ""
		if jb.ErrorMessage != nil {
			errMsg = *jb.ErrorMessage
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			jb.Id, jb.State, jb.Attempts, jb.MaxRetries, jb.CreatedAt.Format(time.RFC3339), errMsg)
	}
	w.Flush()
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	stateFlag := fs.String("state", "", "filter by state: pending, processing, completed, dead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := job.Unknown
	if *stateFlag != "" {
		var err error
		state, err = job.ParseState(*stateFlag)
		if err != nil {
			return fmt.Errorf("invalid --state %q: %w", *stateFlag, err)
		}
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	jobs, err := q.List(ctx, state, 0)
	if err != nil {
		return err
	}
	printJobTable(jobs)
	return nil
}
