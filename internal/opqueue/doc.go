// Package opqueue implements the single-worker operation queue that
// serializes file mutations produced by the planner's executor.
//
// Every enqueued Operation is dispatched FIFO by one background worker,
// which takes a write lock on the operation's file path (via lockmgr)
// before running it. That guarantees at-most-one concurrent mutation per
// path without the queue itself needing to understand what an operation
// does. A failing operation increments the queue's failed counter and the
// worker loop continues; the queue never retries, and cancellation is by
// Close, which drains whatever is still pending to a failure result.
//
// Idleness is observable via WaitUntilIdle, implemented with a
// sync.Cond rather than polling, matching the condition-variable style the
// project package's watcher debounce logic uses for its own idle wait.
package opqueue
