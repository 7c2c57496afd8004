package javaadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/refactorengine/internal/plan"
)

func TestParseImports(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Foo.java")
	src := "package com.example;\n\nimport com.example.util.Helper;\nimport static com.example.util.Constants.MAX;\n\nclass Foo {}\n"
	if err := os.WriteFile(file, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New()
	imports, err := a.ParseImports(nil, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports, got %d: %+v", len(imports), imports)
	}
	if imports[0].ModulePath != "com.example.util.Helper" {
		t.Errorf("unexpected first import: %+v", imports[0])
	}
}

func TestFindModuleReferencesQualified(t *testing.T) {
	a := New()
	content := "import com.example.util.Helper;\n\nvoid f() {\n    Helper.doThing();\n}\n"
	refs, err := a.FindModuleReferences(content, "com.example.util.Helper", plan.ScopeQualifiedPaths)
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
		t.Fatalf("expected both kinds, got %+v", refs)
	}
}
