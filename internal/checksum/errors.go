package checksum

import "fmt"

// MismatchError reports that a file's current checksum no longer matches
// the value recorded on the plan, or that the file could not be read at
// all. Either case aborts the plan without partial application.
type MismatchError struct {
	File     string
	Expected string
	Actual   string
	Reason   string
}

func (e *MismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("checksum: %s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("checksum: %s: expected %s, got %s", e.File, e.Expected, e.Actual)
}
