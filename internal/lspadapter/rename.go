package lspadapter

import (
	"context"
	"fmt"

	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

// RenameSymbol asks the language server to rename the symbol at pos via
// textDocument/rename and converts the resulting WorkspaceEdit into an
// EditPlan. The bool return reports whether the server produced a usable
// result; false (with a nil error) means the caller should fall back to
// the planner's own AST-based rename.
func (a *Adapter) RenameSymbol(ctx context.Context, path string, pos lsp.Position, newName string) (*plan.EditPlan, bool, error) {
	if a.client == nil {
		return nil, false, nil
	}

	result, err := a.client.Rename(ctx, path, pos, newName)
	if err != nil {
		return nil, false, fmt.Errorf("lspadapter: rename: %w", err)
	}
	if result == nil || result.Edit == nil || len(result.Edit.Changes) == 0 {
		return nil, false, nil
	}

	ep, err := ToEditPlan(result.Edit, path, "rename_symbol", map[string]any{"name": newName})
	if err != nil {
		return nil, false, err
	}
	return ep, true, nil
}
