package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// maxSnippet bounds the stderr tail captured on failure; full
// stdout/stderr is never kept, only a short diagnostic snippet.
const maxSnippet = 2048

// ErrTimeout is returned when the command is still running once the
// process-wide execution ceiling elapses. The child is killed.
var ErrTimeout = errors.New("execution-timeout")

// Run executes command through the shell, honoring ceiling as a fixed
// process-wide timeout. It returns nil if the command exits 0.
//
// On any other outcome it returns a non-nil error whose message is a
// short diagnostic suitable for Job.ErrorMessage: the command's stderr
// tail (for a missing command, the shell's "not found" message),
// "exit status N" if it failed without writing to stderr,
// "execution-timeout" if the ceiling was hit, or the reason the shell
// itself could not be started.
//
// Run deliberately does not take the worker's shutdown context: a
// graceful shutdown lets an in-flight command finish rather than
// killing it; only the fixed ceiling may terminate the child early.
func Run(command string, ceiling time.Duration) error {
	runCtx, cancel := context.WithTimeout(context.Background(), ceiling)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if runCtx.Err() != nil {
		return ErrTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		snippet := tail(stderr.Bytes(), maxSnippet)
		if snippet == "" {
			return fmt.Errorf("exit status %d", exitErr.ExitCode())
		}
		return errors.New(snippet)
	}

	// Spawn failure: the shell itself could not be started.
	return err
}

func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(bytes.TrimSpace(b))
	}
	return string(bytes.TrimSpace(b[len(b)-n:]))
}
