package main

import (
	"context"
	"flag"
	"os"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/queue"
	"github.com/TamannaDash/queuectl/store"
)

const (
	defaultDBPath = "queuectl.db"
	defaultPidDir = "."
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dbFlag(fs *flag.FlagSet) *string {
	return fs.String("db", envOr("QUEUECTL_DB", defaultDBPath), "path to the queuectl database file")
}

func pidDirFlag(fs *flag.FlagSet) *string {
	return fs.String("pid-dir", envOr("QUEUECTL_PID_DIR", defaultPidDir), "directory holding worker liveness records")
}

// openQueue opens the store at dbPath and wraps it in a Queue bound to
// the store's own config.
func openQueue(ctx context.Context, dbPath string) (*store.Store, *queue.Queue, error) {
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	return s, queue.New(s, config.New(s)), nil
}
