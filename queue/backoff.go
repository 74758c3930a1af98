package queue

import "math"

// computeBackoffSeconds implements the fixed retry delay formula:
// backoff_base ^ (attempts+1) seconds, where attempts is the job's
// completed-attempt count captured at claim time (i.e. before the
// attempt that just failed is recorded). It takes no other
// parameters — no multiplier, max interval, or jitter.
func computeBackoffSeconds(base uint32, attempts uint32) float64 {
	return math.Pow(float64(base), float64(attempts+1))
}
