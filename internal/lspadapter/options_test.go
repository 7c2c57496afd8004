package lspadapter

import (
	"sort"
	"testing"
)

func TestMergeInitializationOptions(t *testing.T) {
	base := []byte(`{"gofumpt":true}`)
	merged, err := MergeInitializationOptions(base, map[string]any{
		"buildFlags":             []any{"-tags=integration"},
		"usePlaceholders":        true,
		"deepCompletion.enabled": false,
	})
	if err != nil {
		t.Fatalf("MergeInitializationOptions: %v", err)
	}

	paths := InitializationOptionPaths(merged)
	sort.Strings(paths)

	want := []string{"buildFlags", "deepCompletion.enabled", "gofumpt", "usePlaceholders"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
	}
}

func TestMergeInitializationOptionsNilBase(t *testing.T) {
	merged, err := MergeInitializationOptions(nil, map[string]any{"enable": true})
	if err != nil {
		t.Fatalf("MergeInitializationOptions: %v", err)
	}
	paths := InitializationOptionPaths(merged)
	if len(paths) != 1 || paths[0] != "enable" {
		t.Errorf("paths = %v, want [enable]", paths)
	}
}
