package lspadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

// ExtractFunction asks the language server for a refactor.extract code
// action covering rng and converts its WorkspaceEdit into an EditPlan. The
// bool return reports whether a usable extract action was offered; false
// means the caller should fall back to the planner's own verbatim-lift
// extraction.
//
// The server's code action is taken as-is rather than applied through
// ApplyCodeAction: this module's executor, not the LSP client, is what
// applies edits, so only the action's Edit is needed here.
func (a *Adapter) ExtractFunction(ctx context.Context, path string, rng lsp.Range) (*plan.EditPlan, bool, error) {
	if a.client == nil {
		return nil, false, nil
	}

	actions, err := a.client.Refactorings(ctx, path, rng)
	if err != nil {
		return nil, false, fmt.Errorf("lspadapter: refactorings: %w", err)
	}

	action := findExtractAction(actions)
	if action == nil || action.Edit == nil || len(action.Edit.Changes) == 0 {
		return nil, false, nil
	}

	ep, err := ToEditPlan(action.Edit, path, "extract_function", map[string]any{"title": action.Title})
	if err != nil {
		return nil, false, err
	}
	return ep, true, nil
}

func findExtractAction(actions []lsp.CodeAction) *lsp.CodeAction {
	for i := range actions {
		kind := string(actions[i].Kind)
		if kind == string(lsp.CodeActionKindRefactorExtract) || strings.Contains(strings.ToLower(actions[i].Title), "extract") {
			return &actions[i]
		}
	}
	return nil
}
