// Package lockmgr provides a path-keyed reader/writer lock registry for the
// operation queue and planner.
//
// Each normalized absolute path gets its own *sync.RWMutex, created lazily
// on first use and reference-counted: the entry is removed once no guard
// holds it and no caller is waiting on it, so the registry is sized by the
// paths currently locked or awaited. This generalizes the per-document
// sync.RWMutex in the project package's filestore.Document from a single
// open-document lock to a registry covering any path the planner or queue
// needs to guard, including files that are never opened as editor
// documents.
//
// Go's sync.RWMutex already blocks new readers once a writer is waiting,
// so writer-preference falls out of the standard library without extra
// bookkeeping.
package lockmgr
