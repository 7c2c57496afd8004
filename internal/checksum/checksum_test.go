package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/refactorengine/internal/plan"
)

func TestComputeSkipsInsertEdits(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	if err := os.WriteFile(file, []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	edits := []plan.TextEdit{
		{EditType: plan.EditInsert, FilePath: file},
		{EditType: plan.EditReplace, FilePath: filepath.Join(dir, "missing.go")},
	}

	sums, err := Compute(edits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("expected no checksums (insert skipped, missing omitted), got %+v", sums)
	}
}

func TestComputeAndVerifyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	if err := os.WriteFile(file, []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	edits := []plan.TextEdit{{EditType: plan.EditReplace, FilePath: file}}
	sums, err := Compute(edits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("expected 1 checksum, got %+v", sums)
	}
	if err := Verify(sums); err != nil {
		t.Fatalf("expected checksums to verify, got %v", err)
	}
}

func TestVerifyDetectsDrift(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	if err := os.WriteFile(file, []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, err := File(file)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(file, []byte("package a\n\nfunc f() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err = Verify(map[string]string{file: sum})
	if err == nil {
		t.Fatal("expected a mismatch error")
	}
	var mismatch *MismatchError
	if !assignable(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
}

func assignable(err error, target **MismatchError) bool {
	m, ok := err.(*MismatchError)
	if ok {
		*target = m
	}
	return ok
}
