package lspadapter

import (
	"context"
	"unicode"

	"github.com/dshills/refactorengine/internal/analysis"
	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

// symbolKindNames maps an LSP SymbolKind onto the word DetectDeadCode's
// finding message uses ("function %q has no references").
var symbolKindNames = map[lsp.SymbolKind]string{
	lsp.SymbolKindFunction:  "function",
	lsp.SymbolKindMethod:    "method",
	lsp.SymbolKindVariable:  "variable",
	lsp.SymbolKindConstant:  "constant",
	lsp.SymbolKindClass:     "type",
	lsp.SymbolKindStruct:    "type",
	lsp.SymbolKindInterface: "interface",
	lsp.SymbolKindField:     "field",
}

// Symbols asks the language server for path's document symbols and
// flattens the resulting tree into analysis.Symbol values. Exported is a
// capitalized-first-letter heuristic: correct for Go, an approximation for
// languages that mark visibility with a keyword rather than casing.
func (a *Adapter) Symbols(ctx context.Context, path string) ([]analysis.Symbol, error) {
	if a.client == nil {
		return nil, nil
	}
	tree, err := a.client.DocumentSymbols(ctx, path)
	if err != nil {
		return nil, err
	}
	var out []analysis.Symbol
	flattenSymbols(tree, &out)
	return out, nil
}

func flattenSymbols(symbols []lsp.DocumentSymbol, out *[]analysis.Symbol) {
	for _, s := range symbols {
		kindName, ok := symbolKindNames[s.Kind]
		if ok {
			*out = append(*out, analysis.Symbol{
				Name:       s.Name,
				Exported:   isExportedName(s.Name),
				SymbolKind: kindName,
				Location: plan.SourceLocation{
					StartLine:   s.SelectionRange.Start.Line,
					StartColumn: s.SelectionRange.Start.Character,
					EndLine:     s.SelectionRange.End.Line,
					EndColumn:   s.SelectionRange.End.Character,
				},
			})
		}
		flattenSymbols(s.Children, out)
	}
}

func isExportedName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
