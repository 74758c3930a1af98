// Package execrunner shells out to run a job's command and turns the
// outcome into the (nil-or-diagnostic) error shape queue.Report
// expects: nil on exit code 0, otherwise a bounded-length stderr tail
// or a reason like "command not found" or "execution-timeout".
//
// It is built on the standard os/exec idiom for a context-bound,
// output-capturing child process.
package execrunner
