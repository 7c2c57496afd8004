// Package config provides the configuration system for the refactor engine:
// workspace roots, per-language LSP server commands, operation-queue
// worker count, lock-manager fairness knobs, and request timeouts.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← REFACTORENGINE_*, highest priority
//	├─────────────────────────────┤
//	│  3. Project/Workspace       │  ← <project config dir>/config.toml
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/refactorengine/settings.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Load adds no command-line layer; command-line flags are applied by the
// caller to the ServerConfig that Server returns.
//
// # Sub-packages
//
//   - loader: configuration file loading (TOML, environment variables)
//   - layer: layer management and merging strategies
//   - schema: JSON Schema validation
//   - watcher: file watching for live reload
//   - notify: change notification and observer pattern
//
// # Basic Usage
//
//	cfg := config.New(config.WithProjectConfigDir(workspace))
//	if err := cfg.Load(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	sc := cfg.Server()
//	fmt.Println(sc.QueueWorkers)
//
// # Server Configuration
//
//	# ~/.config/refactorengine/settings.toml
//	[queue]
//	workers = 4
//	waitTimeout = "30s"
//
//	[lsp.servers.go]
//	command = "gopls"
//	args = ["serve"]
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrSettingNotFound: setting path doesn't exist
//   - ErrTypeMismatch: value type doesn't match expected type
//   - ErrValidationFailed: value fails schema validation
//   - ParseError: configuration file parsing failed
//   - ErrFileNotFound: configuration file doesn't exist
package config
