package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

func TestInlineVariableReplacesUsagesAndRemovesDeclaration(t *testing.T) {
	content := "func main() {\n\tsum := a + b\n\tfmt.Println(sum)\n\tfmt.Println(sum)\n}\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pl := New(lang.NewRegistry())
	ep, err := pl.InlineVariable(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var replacements, deletions int
	for _, e := range ep.Edits() {
		switch e.EditType {
		case plan.EditReplace:
			replacements++
			if e.NewText != "(a + b)" {
				t.Errorf("expected parenthesized initializer, got %q", e.NewText)
			}
		case plan.EditDelete:
			deletions++
		}
	}
	if replacements != 2 {
		t.Fatalf("expected 2 usage replacements, got %d: %+v", replacements, ep.Edits())
	}
	if deletions != 1 {
		t.Fatalf("expected 1 declaration deletion, got %d", deletions)
	}
}

func TestInlineVariableRejectsReassignment(t *testing.T) {
	content := "func main() {\n\tx := 1\n\tx = 2\n\tfmt.Println(x)\n}\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pl := New(lang.NewRegistry())
	if _, err := pl.InlineVariable(path, 1); err != ErrUnsafeInline {
		t.Fatalf("expected ErrUnsafeInline, got %v", err)
	}
}

func TestInlineVariableNoUsagesReturnsSymbolNotFound(t *testing.T) {
	content := "func main() {\n\tx := 1\n}\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pl := New(lang.NewRegistry())
	if _, err := pl.InlineVariable(path, 1); err != ErrSymbolNotFound {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}
