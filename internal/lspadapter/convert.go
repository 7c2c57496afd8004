package lspadapter

import (
	"fmt"

	"github.com/dshills/refactorengine/internal/checksum"
	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

// textEditPriority is applied to every edit converted from a WorkspaceEdit.
// LSP edits within one file never need the fine-grained ordering the
// planner's own multi-step intents use (manifest-then-entry-then-delete),
// so a single flat priority is enough; edits are still sorted into
// canonical (FilePath, Location) order by plan.NewEditPlan.
const textEditPriority = 50

// ToEditPlan converts an LSP WorkspaceEdit into a plan.EditPlan, computing
// checksums over every file the edit touches. sourceFile is the file the
// originating intent was invoked on, recorded as the plan's SourceFile even
// when the edit spans other files (e.g. a cross-file rename).
func ToEditPlan(edit *lsp.WorkspaceEdit, sourceFile, intentName string, args any) (*plan.EditPlan, error) {
	if edit == nil {
		return nil, fmt.Errorf("lspadapter: nil workspace edit")
	}

	var edits []plan.TextEdit
	for uri, fileEdits := range edit.Changes {
		path := uriToPath(uri)
		for _, e := range fileEdits {
			edits = append(edits, plan.TextEdit{
				EditType: classifyEdit(e),
				FilePath: path,
				Location: plan.SourceLocation{
					StartLine:   e.Range.Start.Line,
					StartColumn: e.Range.Start.Character,
					EndLine:     e.Range.End.Line,
					EndColumn:   e.Range.End.Character,
				},
				NewText:  e.NewText,
				Priority: textEditPriority,
			})
		}
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("lspadapter: workspace edit has no changes")
	}

	editPlan := plan.NewEditPlan(sourceFile, edits)
	editPlan.Metadata = plan.EditPlanMetadata{
		IntentName: intentName,
		IntentArgs: args,
	}
	sums, err := checksum.Compute(edits)
	if err != nil {
		return nil, err
	}
	editPlan.FileChecksums = sums
	return editPlan, nil
}

// classifyEdit infers an EditKind from an LSP TextEdit, which carries no
// explicit kind of its own: a zero-width range is an insertion, an empty
// NewText over a non-zero range is a deletion, and anything else replaces.
func classifyEdit(e lsp.TextEdit) plan.EditKind {
	switch {
	case e.Range.Start == e.Range.End:
		return plan.EditInsert
	case e.NewText == "":
		return plan.EditDelete
	default:
		return plan.EditReplace
	}
}
