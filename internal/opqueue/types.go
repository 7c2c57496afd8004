package opqueue

import "time"

// OperationType names the kind of mutation an Operation performs.
type OperationType string

const (
	OpCreateDir  OperationType = "CreateDir"
	OpCreateFile OperationType = "CreateFile"
	OpWrite      OperationType = "Write"
	OpDelete     OperationType = "Delete"
	OpRename     OperationType = "Rename"
	OpCustom     OperationType = "Custom"
)

// Operation is one queue entry. Run is invoked by the worker once the
// operation's FilePath is write-locked; its returned error (if any)
// increments the queue's failed counter and is otherwise swallowed — the
// queue does not retry or propagate it beyond Result.
type Operation struct {
	ID            string
	OperationType OperationType
	FilePath      string
	Params        map[string]any
	EnqueuedAt    time.Time
	Run           func() error
}

// Stats is a snapshot of OperationQueueStats. Completed and Failed are
// monotonic counters over the queue's lifetime; Pending rises on Enqueue
// and falls as the worker dispatches operations.
type Stats struct {
	Pending   int
	Completed int64
	Failed    int64
}

// Result reports what happened to one dispatched operation.
type Result struct {
	Operation Operation
	Err       error
}
