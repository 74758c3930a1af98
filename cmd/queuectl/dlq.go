package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

func runDLQList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dlq list", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	jobs, err := q.DLQList(ctx)
	if err != nil {
		return err
	}
	printJobTable(jobs)
	return nil
}

func runDLQRetry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("dlq retry requires an <id> argument")
	}
	id := args[0]

	fs := flag.NewFlagSet("dlq retry", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := q.DLQRetry(ctx, id); err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}
