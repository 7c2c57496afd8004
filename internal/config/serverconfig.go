package config

import "time"

// LSPServerConfig describes how to launch a language server for one
// language, reusing the lsp package's ServerConfig shape.
type LSPServerConfig struct {
	Command     string   `toml:"command"`
	Args        []string `toml:"args"`
	LanguageIDs []string `toml:"languageIds"`
}

// ServerConfig is the refactor engine's top-level runtime configuration:
// workspace roots, per-language LSP servers, queue sizing, lock fairness,
// and request timeouts, derived from a Config's merged layers.
type ServerConfig struct {
	WorkspaceRoots    []string
	QueueWorkers      int
	QueueWaitTimeout  time.Duration
	LockFairness      bool
	LSPRequestTimeout time.Duration
	LSPServers        map[string]LSPServerConfig
}

// DefaultServerConfig returns the built-in defaults applied before any
// layer overrides them.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		QueueWorkers:      1,
		QueueWaitTimeout:  30 * time.Second,
		LockFairness:      true,
		LSPRequestTimeout: 10 * time.Second,
		LSPServers: map[string]LSPServerConfig{
			"go":         {Command: "gopls", Args: []string{"serve"}, LanguageIDs: []string{"go"}},
			"rust":       {Command: "rust-analyzer", LanguageIDs: []string{"rust"}},
			"python":     {Command: "pyright-langserver", Args: []string{"--stdio"}, LanguageIDs: []string{"python"}},
			"typescript": {Command: "typescript-language-server", Args: []string{"--stdio"}, LanguageIDs: []string{"typescript", "javascript"}},
			"java":       {Command: "jdtls", LanguageIDs: []string{"java"}},
		},
	}
}

// Server reads the merged layer data into a ServerConfig, falling back to
// DefaultServerConfig's values for anything unset.
func (c *Config) Server() ServerConfig {
	sc := DefaultServerConfig()

	if roots, err := c.GetStringSlice("workspace.roots"); err == nil {
		sc.WorkspaceRoots = roots
	}
	if workers, err := c.GetInt("queue.workers"); err == nil {
		sc.QueueWorkers = workers
	}
	if wait, err := c.GetString("queue.waitTimeout"); err == nil {
		if d, err := time.ParseDuration(wait); err == nil {
			sc.QueueWaitTimeout = d
		}
	}
	if fair, err := c.GetBool("lockmgr.fairness"); err == nil {
		sc.LockFairness = fair
	}
	if timeout, err := c.GetString("lsp.requestTimeout"); err == nil {
		if d, err := time.ParseDuration(timeout); err == nil {
			sc.LSPRequestTimeout = d
		}
	}

	if merged := c.Merged(); merged != nil {
		if lsp, ok := merged["lsp"].(map[string]any); ok {
			if servers, ok := lsp["servers"].(map[string]any); ok {
				for lang, raw := range servers {
					if entry, ok := raw.(map[string]any); ok {
						sc.LSPServers[lang] = parseLSPServerConfig(entry)
					}
				}
			}
		}
	}

	return sc
}

func parseLSPServerConfig(entry map[string]any) LSPServerConfig {
	var cfg LSPServerConfig
	if cmd, ok := entry["command"].(string); ok {
		cfg.Command = cmd
	}
	if args, ok := entry["args"].([]any); ok {
		for _, a := range args {
			if s, ok := a.(string); ok {
				cfg.Args = append(cfg.Args, s)
			}
		}
	}
	if ids, ok := entry["languageIds"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok {
				cfg.LanguageIDs = append(cfg.LanguageIDs, s)
			}
		}
	}
	return cfg
}
