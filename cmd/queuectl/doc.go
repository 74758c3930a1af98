// Command queuectl is the CLI operator interface for the job queue:
// enqueue, start/stop worker processes, inspect status, list jobs, and
// manage the dead letter queue.
//
// Subcommand dispatch is hand-rolled over the standard flag package,
// mirroring the rest of the retrieved pack: no third-party CLI
// framework appears anywhere in it, so none is introduced here either.
//
// "worker run" is an internal subcommand: "worker start" re-execs the
// current binary with it to spawn each worker process. It is not
// intended to be invoked directly by an operator, though nothing
// prevents it.
package main
