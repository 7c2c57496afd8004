package rustadapter

import (
	"testing"

	"github.com/dshills/refactorengine/internal/plan"
)

func TestAdapterFindModuleReferences(t *testing.T) {
	a := New()
	content := "use foo::bar;\n\nfn f() {\n    foo::bar::baz();\n}\n"

	refs, err := a.FindModuleReferences(content, "foo::bar", plan.ScopeQualifiedPaths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawDecl, sawQualified bool
	for _, r := range refs {
		switch r.Kind {
		case plan.RefDeclaration:
			sawDecl = true
		case plan.RefQualifiedPath:
			sawQualified = true
		}
	}
	if !sawDecl || !sawQualified {
		t.Fatalf("expected both kinds of reference, got %+v", refs)
	}
}

func TestAdapterRewriteImportsForRenameConsolidation(t *testing.T) {
	a := New()
	content := "use old_crate::Thing;\n"
	renameInfo := map[string]any{
		"old_crate_name":    "old_crate",
		"new_import_prefix": "target_crate::protocol",
	}
	rewritten, count, err := a.RewriteImportsForRename(content, "old_crate", "target_crate::protocol", "main.rs", "/proj", renameInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 rewrite, got %d", count)
	}
	want := "use target_crate::protocol::Thing;\n"
	if rewritten != want {
		t.Fatalf("expected %q, got %q", want, rewritten)
	}
}
