package lspadapter

import (
	"context"

	"github.com/dshills/refactorengine/internal/analysis"
	"github.com/dshills/refactorengine/internal/lsp"
)

// CountReferences implements analysis.ReferenceCounter by asking the
// language server for textDocument/references at the symbol's starting
// position. It satisfies the seam internal/analysis defines for
// LSP-assisted dead-code detection.
func (a *Adapter) CountReferences(ctx context.Context, filePath string, sym analysis.Symbol) (int, error) {
	if a.client == nil {
		return 0, nil
	}

	pos := lsp.Position{
		Line:      sym.Location.StartLine,
		Character: sym.Location.StartColumn,
	}
	result, err := a.client.FindReferences(ctx, filePath, pos)
	if err != nil {
		return 0, err
	}
	if result == nil {
		return 0, nil
	}
	return len(result.Locations), nil
}
