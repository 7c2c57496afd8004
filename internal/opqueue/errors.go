package opqueue

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Enqueue once the queue has been closed, and set
// as the Err on Results drained during Close for operations that had not
// yet started running.
var ErrClosed = errors.New("opqueue: queue closed")

// PanicError reports that an operation's Run func panicked. The worker
// recovers it so the panic never takes down the queue.
type PanicError struct {
	OperationID string
	Value       any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("opqueue: operation %s panicked: %v", e.OperationID, e.Value)
}
