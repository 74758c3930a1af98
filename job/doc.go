// Package job defines the stateful representation of a unit of work
// managed by queuectl.
//
// A Job carries the command to execute plus delivery and scheduling
// metadata: State, Attempts, MaxRetries, NextRetryAt, ErrorMessage and
// ClaimedBy. These fields are maintained exclusively by the store and
// queue layers.
//
// Job values returned by Store or Queue methods are snapshots of
// persisted state. Mutating them directly does not affect the
// underlying queue; transitions must go through Store/Queue methods.
package job
