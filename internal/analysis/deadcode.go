package analysis

import (
	"context"
	"fmt"

	"github.com/dshills/refactorengine/internal/plan"
)

// Symbol is the minimal shape DetectDeadCode needs from a language
// adapter's or LSP client's symbol listing.
type Symbol struct {
	Name       string
	Exported   bool
	Location   plan.SourceLocation
	SymbolKind string
}

// ReferenceCounter counts how many locations reference a symbol. Dead-code
// detection is LSP-assisted per spec.md: a real implementation backs this
// with find_references against the language server; this package only
// defines the seam.
type ReferenceCounter interface {
	CountReferences(ctx context.Context, filePath string, sym Symbol) (int, error)
}

// DetectDeadCode flags unexported symbols with zero references found by
// counter. Exported symbols are skipped: a language server's workspace view
// is local to the files it has opened, so an exported symbol showing zero
// references is far more likely an incomplete reference search than a
// genuinely dead symbol.
func DetectDeadCode(ctx context.Context, filePath string, symbols []Symbol, counter ReferenceCounter) ([]Finding, error) {
	var findings []Finding
	for _, sym := range symbols {
		if sym.Exported {
			continue
		}
		count, err := counter.CountReferences(ctx, filePath, sym)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		findings = append(findings, Finding{
			Kind:     KindDeadCode,
			Severity: SeverityLow,
			Location: sym.Location,
			Message:  fmt.Sprintf("%s %q has no references", sym.SymbolKind, sym.Name),
		})
	}
	return findings, nil
}
