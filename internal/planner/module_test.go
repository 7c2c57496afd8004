package planner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/refactorengine/internal/lang/goadapter"
	"github.com/dshills/refactorengine/internal/plan"
)

func TestExtractModuleToPackageOrdersEditsByPriority(t *testing.T) {
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "helpers.go")
	if err := os.WriteFile(oldFile, []byte("package pkg\n\nfunc Helper() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	parent := filepath.Join(dir, "main.go")
	if err := os.WriteFile(parent, []byte("package main\n\nimport \"pkg/helpers\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	newDir := filepath.Join(dir, "helperspkg")
	pl := New(nil)
	adapter := goadapter.New()

	ep, err := pl.ExtractModuleToPackage(context.Background(), adapter, ExtractModuleToPackageParams{
		OldFile:       oldFile,
		NewPackageDir: newDir,
		PackageName:   "helperspkg",
		ParentFile:    parent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edits := ep.Edits()
	if len(edits) == 0 {
		t.Fatal("expected at least one edit")
	}
	for i := 1; i < len(edits); i++ {
		if edits[i-1].FilePath == edits[i].FilePath && edits[i-1].Priority < edits[i].Priority {
			t.Fatalf("edits not sorted by descending priority within file: %+v then %+v", edits[i-1], edits[i])
		}
	}

	var sawManifest, sawEntry, sawDelete bool
	for _, e := range edits {
		if e.FilePath == filepath.Join(newDir, "go.mod") && e.EditType == plan.EditInsert {
			sawManifest = true
			if e.Priority != PriorityCreateManifest {
				t.Errorf("manifest edit priority = %d, want %d", e.Priority, PriorityCreateManifest)
			}
		}
		if e.FilePath == filepath.Join(newDir, "main.go") && e.EditType == plan.EditInsert && strings.Contains(e.NewText, "Helper") {
			sawEntry = true
		}
		if e.FilePath == oldFile && e.EditType == plan.EditDelete {
			sawDelete = true
		}
	}
	if !sawManifest || !sawEntry || !sawDelete {
		t.Fatalf("expected manifest+entry+delete edits, got %+v", edits)
	}
}
