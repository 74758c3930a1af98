// Package supervisor implements the operator-facing worker lifecycle:
// spawning worker processes, tracking them through filesystem-resident
// liveness records rather than in-memory handles, and the stuck-job
// recovery sweep.
//
// Liveness is deliberately not kept in the Store: workers must stay
// observable even when the database is momentarily locked, and
// "worker start"/"worker stop" are independent, short-lived CLI
// invocations with no shared process memory between them — only the
// liveness files on disk persist across the two calls.
//
// StuckSweeper retargets a start/stop/timer shape from deleting
// terminal jobs to recovering processing jobs abandoned by a crashed
// or killed worker. It runs inside every worker process rather than
// as a separate daemon, since "worker start" itself returns as soon as
// its children have registered and cannot host a long-lived timer.
package supervisor
