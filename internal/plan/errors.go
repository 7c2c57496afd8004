package plan

import "fmt"

// OverlapError reports two edits in the same file whose locations overlap,
// violating EditPlan's non-overlap invariant.
type OverlapError struct {
	File          string
	First, Second SourceLocation
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("plan: overlapping edits in %s: %+v and %+v", e.File, e.First, e.Second)
}
