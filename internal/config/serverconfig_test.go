package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServerDefaults(t *testing.T) {
	c := New(WithWatcher(false), WithSchemaValidation(false))
	defer c.Close()

	sc := c.Server()
	if sc.QueueWorkers != 1 {
		t.Errorf("QueueWorkers = %d, want 1", sc.QueueWorkers)
	}
	if sc.QueueWaitTimeout != 30*time.Second {
		t.Errorf("QueueWaitTimeout = %v, want 30s", sc.QueueWaitTimeout)
	}
	if _, ok := sc.LSPServers["go"]; !ok {
		t.Error("expected a default go LSP server entry")
	}
}

func TestServerOverridesFromSettings(t *testing.T) {
	tmpDir := t.TempDir()
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	settingsContent := `
[queue]
workers = 4
waitTimeout = "45s"

[lsp]
requestTimeout = "5s"
`
	if err := os.WriteFile(settingsPath, []byte(settingsContent), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(WithUserConfigDir(tmpDir), WithWatcher(false), WithSchemaValidation(false))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sc := c.Server()
	if sc.QueueWorkers != 4 {
		t.Errorf("QueueWorkers = %d, want 4", sc.QueueWorkers)
	}
	if sc.QueueWaitTimeout != 45*time.Second {
		t.Errorf("QueueWaitTimeout = %v, want 45s", sc.QueueWaitTimeout)
	}
	if sc.LSPRequestTimeout != 5*time.Second {
		t.Errorf("LSPRequestTimeout = %v, want 5s", sc.LSPRequestTimeout)
	}
}
