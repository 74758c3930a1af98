// Package worker implements the long-lived poll/claim/execute/report
// loop a single worker process runs.
//
// A Worker is single-threaded and strictly one-job-at-a-time: Claim,
// execute and Report happen sequentially inside one poll tick, and the
// next tick only begins once the previous one returns. It drives this
// off internal.TimerTask exactly as-is — its do loop already calls the
// handler synchronously and lets time.Ticker drop ticks that arrive
// while the handler is still running, which is precisely the
// "do not claim additional jobs between steps" contract this package
// must uphold.
//
// A Worker never pools goroutines to handle more than one job at a
// time: concurrency across jobs comes from running more worker
// processes (see package supervisor), not from more goroutines within
// one.
package worker
