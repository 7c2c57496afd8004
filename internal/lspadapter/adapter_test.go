package lspadapter

import (
	"context"
	"testing"

	"github.com/dshills/refactorengine/internal/analysis"
	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

func TestRenameSymbolWithNilClientFallsBack(t *testing.T) {
	a := New(nil)
	ep, handled, err := a.RenameSymbol(context.Background(), "/tmp/a.go", lsp.Position{}, "newName")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled {
		t.Fatal("expected handled=false with a nil client")
	}
	if ep != nil {
		t.Fatal("expected a nil plan with a nil client")
	}
}

func TestExtractFunctionWithNilClientFallsBack(t *testing.T) {
	a := New(nil)
	ep, handled, err := a.ExtractFunction(context.Background(), "/tmp/a.go", lsp.Range{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled || ep != nil {
		t.Fatal("expected no result with a nil client")
	}
}

func TestCountReferencesWithNilClient(t *testing.T) {
	a := New(nil)
	sym := analysis.Symbol{
		Name:       "helper",
		SymbolKind: "function",
		Location:   plan.SourceLocation{StartLine: 3, StartColumn: 1},
	}
	n, err := a.CountReferences(context.Background(), "/tmp/a.go", sym)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestFindExtractAction(t *testing.T) {
	actions := []lsp.CodeAction{
		{Title: "Organize imports", Kind: lsp.CodeActionKindSourceOrganizeImports},
		{Title: "Extract to function", Kind: lsp.CodeActionKindRefactorExtract},
	}
	action := findExtractAction(actions)
	if action == nil {
		t.Fatal("expected to find an extract action")
	}
	if action.Title != "Extract to function" {
		t.Errorf("found wrong action: %q", action.Title)
	}
}

func TestFindExtractActionNoneFound(t *testing.T) {
	actions := []lsp.CodeAction{
		{Title: "Organize imports", Kind: lsp.CodeActionKindSourceOrganizeImports},
	}
	if findExtractAction(actions) != nil {
		t.Fatal("expected no extract action to be found")
	}
}
