package dispatcher

import "fmt"

// UnknownToolError is returned when Dispatch is asked to route a tool name
// no handler was ever registered for.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("dispatcher: unknown tool %q", e.Tool)
}
