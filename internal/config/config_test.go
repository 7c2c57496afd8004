package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/refactorengine/internal/config/notify"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}
	defer c.Close()
}

func TestNew_WithOptions(t *testing.T) {
	tmpDir := t.TempDir()

	c := New(
		WithUserConfigDir(tmpDir),
		WithProjectConfigDir(tmpDir),
		WithWatcher(false),
		WithSchemaValidation(false),
	)
	defer c.Close()

	if c.userConfigDir != tmpDir {
		t.Errorf("userConfigDir = %q, want %q", c.userConfigDir, tmpDir)
	}
	if c.projectConfigDir != tmpDir {
		t.Errorf("projectConfigDir = %q, want %q", c.projectConfigDir, tmpDir)
	}
	if c.enableWatcher {
		t.Error("enableWatcher = true, want false")
	}
	if c.enableSchema {
		t.Error("enableSchema = true, want false")
	}
}

func TestConfig_Load(t *testing.T) {
	tmpDir := t.TempDir()

	// Create user settings file
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	settingsContent := `
[queue]
workers = 2

[lockmgr]
fairness = false
`
	if err := os.WriteFile(settingsPath, []byte(settingsContent), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(false),
	)
	defer c.Close()

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check that user settings override defaults
	workers, err := c.GetInt("queue.workers")
	if err != nil {
		t.Errorf("GetInt('queue.workers') error = %v", err)
	}
	if workers != 2 {
		t.Errorf("queue.workers = %d, want 2", workers)
	}

	fairness, err := c.GetBool("lockmgr.fairness")
	if err != nil {
		t.Errorf("GetBool('lockmgr.fairness') error = %v", err)
	}
	if fairness {
		t.Error("lockmgr.fairness = true, want false")
	}
}

func TestConfig_Get(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	// Get existing value
	v, ok := c.Get("queue.workers")
	if !ok {
		t.Error("Get('queue.workers') not found")
	}
	if v != 1 {
		t.Errorf("queue.workers = %v, want 1", v)
	}

	// Get non-existent value
	_, ok = c.Get("nonexistent.path")
	if ok {
		t.Error("Get('nonexistent.path') should not be found")
	}
}

func TestConfig_GetString(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	s, err := c.GetString("queue.waitTimeout")
	if err != nil {
		t.Errorf("GetString('queue.waitTimeout') error = %v", err)
	}
	if s != "30s" {
		t.Errorf("queue.waitTimeout = %q, want '30s'", s)
	}

	// Wrong type
	_, err = c.GetString("queue.workers")
	if err == nil {
		t.Error("GetString('queue.workers') should return error for int")
	}

	// Not found
	_, err = c.GetString("nonexistent")
	if err != ErrSettingNotFound {
		t.Errorf("GetString('nonexistent') error = %v, want ErrSettingNotFound", err)
	}
}

func TestConfig_GetInt(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	i, err := c.GetInt("queue.workers")
	if err != nil {
		t.Errorf("GetInt('queue.workers') error = %v", err)
	}
	if i != 1 {
		t.Errorf("queue.workers = %d, want 1", i)
	}

	// Wrong type
	_, err = c.GetInt("queue.waitTimeout")
	if err == nil {
		t.Error("GetInt('queue.waitTimeout') should return error for string")
	}
}

func TestConfig_GetBool(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	b, err := c.GetBool("lockmgr.fairness")
	if err != nil {
		t.Errorf("GetBool('lockmgr.fairness') error = %v", err)
	}
	if !b {
		t.Error("lockmgr.fairness = false, want true")
	}

	// Wrong type
	_, err = c.GetBool("queue.workers")
	if err == nil {
		t.Error("GetBool('queue.workers') should return error for int")
	}
}

func TestConfig_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(false),
		WithSchemaValidation(false),
	)
	defer c.Close()
	_ = c.Load(context.Background())

	if err := c.Set("queue.loadFactor", 0.7); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f, err := c.GetFloat("queue.loadFactor")
	if err != nil {
		t.Errorf("GetFloat('queue.loadFactor') error = %v", err)
	}
	if f != 0.7 {
		t.Errorf("queue.loadFactor = %f, want 0.7", f)
	}
}

func TestConfig_GetStringSlice(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	s, err := c.GetStringSlice("lsp.servers.go.args")
	if err != nil {
		t.Errorf("GetStringSlice('lsp.servers.go.args') error = %v", err)
	}
	if len(s) != 1 || s[0] != "serve" {
		t.Errorf("lsp.servers.go.args = %v, want [serve]", s)
	}

	// Wrong type
	_, err = c.GetStringSlice("queue.workers")
	if err == nil {
		t.Error("GetStringSlice('queue.workers') should return error for int")
	}
}

func TestConfig_Set(t *testing.T) {
	tmpDir := t.TempDir()

	// Create user settings file so the layer exists
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(false),
		WithSchemaValidation(false), // Disable for simpler testing
	)
	defer c.Close()
	_ = c.Load(context.Background())

	// Set a value
	if err := c.Set("queue.workers", 8); err != nil {
		t.Errorf("Set() error = %v", err)
	}

	// Verify the change
	v, err := c.GetInt("queue.workers")
	if err != nil {
		t.Errorf("GetInt() error = %v", err)
	}
	if v != 8 {
		t.Errorf("queue.workers = %d, want 8", v)
	}
}

func TestConfig_Subscribe(t *testing.T) {
	tmpDir := t.TempDir()

	// Create user settings file
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(false),
		WithSchemaValidation(false),
	)
	defer c.Close()
	_ = c.Load(context.Background())

	var received atomic.Bool
	var receivedChange notify.Change

	sub := c.Subscribe(func(change notify.Change) {
		receivedChange = change
		received.Store(true)
	})
	defer sub.Unsubscribe()

	_ = c.Set("queue.workers", 2)

	if !received.Load() {
		t.Error("observer did not receive notification")
	}
	if receivedChange.Path != "queue.workers" {
		t.Errorf("change.Path = %q, want 'queue.workers'", receivedChange.Path)
	}
	if receivedChange.NewValue != 2 {
		t.Errorf("change.NewValue = %v, want 2", receivedChange.NewValue)
	}
}

func TestConfig_SubscribePath(t *testing.T) {
	tmpDir := t.TempDir()

	// Create user settings file
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 4\n[lockmgr]\nfairness = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(false),
		WithSchemaValidation(false),
	)
	defer c.Close()
	_ = c.Load(context.Background())

	var queueCount, lockmgrCount atomic.Int32

	queueSub := c.SubscribePath("queue", func(change notify.Change) {
		queueCount.Add(1)
	})
	defer queueSub.Unsubscribe()

	lockmgrSub := c.SubscribePath("lockmgr", func(change notify.Change) {
		lockmgrCount.Add(1)
	})
	defer lockmgrSub.Unsubscribe()

	_ = c.Set("queue.workers", 2)
	_ = c.Set("lockmgr.fairness", true)

	if queueCount.Load() != 1 {
		t.Errorf("queue observer received %d changes, want 1", queueCount.Load())
	}
	if lockmgrCount.Load() != 1 {
		t.Errorf("lockmgr observer received %d changes, want 1", lockmgrCount.Load())
	}
}

func TestConfig_Merged(t *testing.T) {
	c := New(WithWatcher(false))
	defer c.Close()
	_ = c.Load(context.Background())

	merged := c.Merged()
	if merged == nil {
		t.Fatal("Merged() returned nil")
	}

	queue, ok := merged["queue"].(map[string]any)
	if !ok {
		t.Fatal("merged[queue] is not a map")
	}
	if queue["workers"] != 1 {
		t.Errorf("merged[queue][workers] = %v, want 1", queue["workers"])
	}
}

func TestConfig_FileWatch(t *testing.T) {
	tmpDir := t.TempDir()

	// Create user settings file
	settingsPath := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(
		WithUserConfigDir(tmpDir),
		WithWatcher(true),
		WithSchemaValidation(false),
	)
	defer c.Close()
	_ = c.Load(context.Background())

	var reloadReceived atomic.Bool

	c.Subscribe(func(change notify.Change) {
		if change.Type == notify.ChangeReload {
			reloadReceived.Store(true)
		}
	})

	// Modify the file
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(settingsPath, []byte("[queue]\nworkers = 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Wait for the watcher to detect the change
	deadline := time.Now().Add(2 * time.Second)
	for !reloadReceived.Load() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	if !reloadReceived.Load() {
		t.Error("did not receive reload notification")
	}

	// Check that the new value is loaded
	workers, _ := c.GetInt("queue.workers")
	if workers != 8 {
		t.Errorf("queue.workers = %d, want 8 after reload", workers)
	}
}

func TestGetPath(t *testing.T) {
	m := map[string]any{
		"editor": map[string]any{
			"tabSize": 4,
			"font": map[string]any{
				"family": "monospace",
			},
		},
	}

	// Test scalar values
	got, ok := getPath(m, "editor.tabSize")
	if !ok || got != 4 {
		t.Errorf("getPath('editor.tabSize') = %v, %v, want 4, true", got, ok)
	}

	got, ok = getPath(m, "editor.font.family")
	if !ok || got != "monospace" {
		t.Errorf("getPath('editor.font.family') = %v, %v, want 'monospace', true", got, ok)
	}

	// Test map value (just check it's found and is a map)
	got, ok = getPath(m, "editor")
	if !ok {
		t.Error("getPath('editor') should be found")
	}
	if _, isMap := got.(map[string]any); !isMap {
		t.Error("getPath('editor') should return a map")
	}

	// Test not found
	_, ok = getPath(m, "nonexistent")
	if ok {
		t.Error("getPath('nonexistent') should not be found")
	}

	_, ok = getPath(m, "editor.nonexistent")
	if ok {
		t.Error("getPath('editor.nonexistent') should not be found")
	}

	_, ok = getPath(m, "")
	if ok {
		t.Error("getPath('') should not be found")
	}
}

func TestSetPath(t *testing.T) {
	m := map[string]any{
		"editor": map[string]any{
			"tabSize": 4,
		},
	}

	// Set existing path
	if err := setPath(m, "editor.tabSize", 8); err != nil {
		t.Errorf("setPath() error = %v", err)
	}
	if m["editor"].(map[string]any)["tabSize"] != 8 {
		t.Error("setPath() did not update value")
	}

	// Set new path with nesting
	if err := setPath(m, "ui.theme.color", "dark"); err != nil {
		t.Errorf("setPath() error = %v", err)
	}
	ui := m["ui"].(map[string]any)
	theme := ui["theme"].(map[string]any)
	if theme["color"] != "dark" {
		t.Error("setPath() did not create nested path")
	}

	// Invalid path
	if err := setPath(m, "", "value"); err != ErrInvalidPath {
		t.Errorf("setPath('') error = %v, want ErrInvalidPath", err)
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"editor.tabSize", []string{"editor", "tabSize"}},
		{"a.b.c", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
		{"", nil},
		{"a..b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := splitPath(tt.path)
		if len(got) != len(tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitPath(%q)[%d] = %q, want %q", tt.path, i, v, tt.want[i])
			}
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{nil, "nil"},
		{"hello", "string"},
		{42, "int"},
		{int64(42), "int"},
		{3.14, "float64"},
		{true, "bool"},
		{[]string{"a"}, "[]string"},
		{[]any{1, 2}, "[]any"},
		{map[string]any{}, "map"},
		{struct{}{}, "unknown"},
	}

	for _, tt := range tests {
		got := typeName(tt.v)
		if got != tt.want {
			t.Errorf("typeName(%T) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
