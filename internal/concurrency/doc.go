// Package concurrency provides generic goroutine-safe helpers. Within this
// module only the operation queue imports it, for its Debouncer; the other
// helpers have no callers here.
//
// These helpers are deliberately domain-agnostic: they know nothing about
// refactor plans, import graphs, or LSP servers. Callers compose them around
// their own operations.
//
//   - Retry / RetryFunc: bounded retry with exponential backoff.
//   - CircuitBreaker: trips after repeated failures and rejects calls until
//     a cooldown elapses.
//   - Debouncer: collapses rapid successive triggers into one call after a
//     quiet period, used by opqueue's WithReenqueueDebounce option to
//     coalesce change events.
//   - Throttler: caps call frequency to at most once per interval.
//   - Cache: generic TTL cache.
//
// # Thread Safety
//
// Every type in this package is safe for concurrent use.
package concurrency
