package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := dispatch(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "queuectl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: queuectl <command> [flags]

commands:
  enqueue <spec> [--max-retries N]
  worker start [--count N] [--poll-interval S]
  worker stop
  status [--stuck-timeout S]
  list [--state STATE]
  dlq list
  dlq retry <id>
  config get [--key KEY]
  config set <key> <value>

global flags accepted by most commands:
  --db PATH        path to the queuectl database file (default "queuectl.db")
  --pid-dir DIR    directory holding worker liveness records (default ".")`)
}

func dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "enqueue":
		return runEnqueue(ctx, args)
	case "worker":
		if len(args) == 0 {
			return fmt.Errorf("worker requires a subcommand: start, stop, run")
		}
		switch args[0] {
		case "start":
			return runWorkerStart(ctx, args[1:])
		case "stop":
			return runWorkerStop(ctx, args[1:])
		case "run":
			return runWorkerRun(ctx, args[1:])
		default:
			return fmt.Errorf("unknown worker subcommand %q", args[0])
		}
	case "status":
		return runStatus(ctx, args)
	case "list":
		return runList(ctx, args)
	case "dlq":
		if len(args) == 0 {
			return fmt.Errorf("dlq requires a subcommand: list, retry")
		}
		switch args[0] {
		case "list":
			return runDLQList(ctx, args[1:])
		case "retry":
			return runDLQRetry(ctx, args[1:])
		default:
			return fmt.Errorf("unknown dlq subcommand %q", args[0])
		}
	case "config":
		if len(args) == 0 {
			return fmt.Errorf("config requires a subcommand: get, set")
		}
		switch args[0] {
		case "get":
			return runConfigGet(ctx, args[1:])
		case "set":
			return runConfigSet(ctx, args[1:])
		default:
			return fmt.Errorf("unknown config subcommand %q", args[0])
		}
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
