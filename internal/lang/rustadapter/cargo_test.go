package rustadapter

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsCargoPackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"foo\"\n")

	ok, err := IsCargoPackage(dir)
	if err != nil || !ok {
		t.Fatalf("expected true, nil; got %v, %v", ok, err)
	}

	workspaceDir := t.TempDir()
	writeFile(t, filepath.Join(workspaceDir, "Cargo.toml"), "[workspace]\nmembers = [\"a\"]\n")
	ok, err = IsCargoPackage(workspaceDir)
	if err != nil || ok {
		t.Fatalf("expected false, nil; got %v, %v", ok, err)
	}
}

func TestExtractCargoRenameInfo(t *testing.T) {
	oldDir := filepath.Join(t.TempDir(), "old-pkg")
	writeFile(t, filepath.Join(oldDir, "Cargo.toml"), "[package]\nname = \"old-pkg\"\n")
	newDir := filepath.Join(filepath.Dir(oldDir), "new-pkg")

	oldCrate, newCrate, err := ExtractCargoRenameInfo(oldDir, newDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oldCrate != "old_pkg" || newCrate != "new_pkg" {
		t.Fatalf("expected old_pkg/new_pkg, got %s/%s", oldCrate, newCrate)
	}
}

func TestExtractConsolidationRenameInfo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"target-crate\"\n")

	oldPkg := filepath.Join(root, "crates", "old-crate")
	writeFile(t, filepath.Join(oldPkg, "Cargo.toml"), "[package]\nname = \"old-crate\"\n")

	newPkgPath := filepath.Join(root, "src", "protocol")
	if err := os.MkdirAll(newPkgPath, 0o755); err != nil {
		t.Fatal(err)
	}

	info, err := ExtractConsolidationRenameInfo(oldPkg, newPkgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.OldCrateName != "old_crate" {
		t.Errorf("expected old_crate name old_crate, got %s", info.OldCrateName)
	}
	if info.TargetCrateName != "target_crate" {
		t.Errorf("expected target crate target_crate, got %s", info.TargetCrateName)
	}
	if info.NewImportPrefix != "target_crate::protocol" {
		t.Errorf("expected import prefix target_crate::protocol, got %s", info.NewImportPrefix)
	}
}

func TestUpdateWorkspaceMember(t *testing.T) {
	content := "[workspace]\nmembers = [\n  \"crates/a\", # keep\n  \"crates/b\",\n]\n"
	rewritten, err := UpdateWorkspaceMember(content, "crates/a", "crates/a-renamed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(rewritten, `"crates/a-renamed"`) {
		t.Errorf("expected rewritten member, got %q", rewritten)
	}
	if !contains(rewritten, "# keep") {
		t.Errorf("expected trailing comment preserved, got %q", rewritten)
	}
}

func TestUpdateWorkspaceMemberNotFound(t *testing.T) {
	content := "[workspace]\nmembers = [\"crates/a\"]\n"
	_, err := UpdateWorkspaceMember(content, "crates/missing", "crates/new")
	if err == nil {
		t.Fatal("expected error for missing member")
	}
}

func TestUpdatePathDependency(t *testing.T) {
	content := "[dependencies]\nfoo = { path = \"../foo\", version = \"1.0\" }\n"
	rewritten, err := UpdatePathDependency(content, "foo", "../foo", "../foo-renamed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(rewritten, `path = "../foo-renamed"`) || !contains(rewritten, `version = "1.0"`) {
		t.Errorf("expected path rewritten with version preserved, got %q", rewritten)
	}
}

func TestRewriteFeatureString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"old-crate", "new-crate"},
		{"old-crate/feat", "new-crate/feat"},
		{"dep:old-crate", "dep:new-crate"},
		{"unrelated", "unrelated"},
	}
	for _, tt := range tests {
		if got := RewriteFeatureString(tt.in, "old-crate", "new-crate"); got != tt.want {
			t.Errorf("RewriteFeatureString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
