package lspadapter

import (
	"testing"

	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/plan"
)

func TestToEditPlanConvertsChangesAcrossFiles(t *testing.T) {
	edit := &lsp.WorkspaceEdit{
		Changes: map[lsp.DocumentURI][]lsp.TextEdit{
			"file:///tmp/a.go": {
				{Range: lsp.Range{Start: lsp.Position{Line: 1, Character: 0}, End: lsp.Position{Line: 1, Character: 5}}, NewText: "hello"},
			},
			"file:///tmp/b.go": {
				{Range: lsp.Range{Start: lsp.Position{Line: 2, Character: 3}, End: lsp.Position{Line: 2, Character: 3}}, NewText: "inserted"},
			},
		},
	}

	ep, err := ToEditPlan(edit, "/tmp/a.go", "rename_symbol", map[string]any{"name": "newName"})
	if err != nil {
		t.Fatalf("ToEditPlan: %v", err)
	}

	edits := ep.Edits()
	if len(edits) != 2 {
		t.Fatalf("got %d edits, want 2", len(edits))
	}

	var sawReplace, sawInsert bool
	for _, e := range edits {
		switch e.FilePath {
		case "/tmp/a.go":
			if e.EditType != plan.EditReplace {
				t.Errorf("a.go edit type = %v, want Replace", e.EditType)
			}
			sawReplace = true
		case "/tmp/b.go":
			if e.EditType != plan.EditInsert {
				t.Errorf("b.go edit type = %v, want Insert", e.EditType)
			}
			sawInsert = true
		default:
			t.Errorf("unexpected file path %q", e.FilePath)
		}
	}
	if !sawReplace || !sawInsert {
		t.Fatal("expected one replace and one insert edit")
	}

	if ep.Metadata.IntentName != "rename_symbol" {
		t.Errorf("IntentName = %q, want rename_symbol", ep.Metadata.IntentName)
	}
}

func TestToEditPlanRejectsEmptyEdit(t *testing.T) {
	edit := &lsp.WorkspaceEdit{}
	if _, err := ToEditPlan(edit, "/tmp/a.go", "rename_symbol", nil); err == nil {
		t.Fatal("expected error for empty workspace edit")
	}
}

func TestClassifyEditDeleteVsReplace(t *testing.T) {
	del := lsp.TextEdit{
		Range:   lsp.Range{Start: lsp.Position{Line: 0, Character: 0}, End: lsp.Position{Line: 0, Character: 4}},
		NewText: "",
	}
	if got := classifyEdit(del); got != plan.EditDelete {
		t.Errorf("classifyEdit(delete) = %v, want Delete", got)
	}

	replace := lsp.TextEdit{
		Range:   lsp.Range{Start: lsp.Position{Line: 0, Character: 0}, End: lsp.Position{Line: 0, Character: 4}},
		NewText: "text",
	}
	if got := classifyEdit(replace); got != plan.EditReplace {
		t.Errorf("classifyEdit(replace) = %v, want Replace", got)
	}
}

func TestURIPathRoundTrip(t *testing.T) {
	uri := pathToURI("/tmp/a.go")
	if uri != "file:///tmp/a.go" {
		t.Errorf("pathToURI = %q", uri)
	}
	if got := uriToPath(uri); got != "/tmp/a.go" {
		t.Errorf("uriToPath = %q, want /tmp/a.go", got)
	}
}
