// Package lsp provides Language Server Protocol (LSP) client integration for
// the refactor engine.
//
// This package abstracts the JSON-RPC communication, server lifecycle
// management, and protocol negotiation behind the LSP-backed tools
// (symbol rename, reference counting for dead-code detection, and the
// read-only navigation tools), independent of which language server is
// actually running. The planner does not use it: file and directory
// renames and function extraction are planned without a language server.
//
// # Architecture
//
// The package is organized around these core components:
//
//   - Client: High-level interface for LSP operations
//   - Manager: Manages multiple language server lifecycles
//   - Server: Single server connection and communication
//   - Transport: JSON-RPC 2.0 protocol implementation
//
// # Quick Start
//
// Create and initialize the LSP client:
//
//	client := lsp.NewClient(lsp.WithWorkspaceRoot("/path/to/project"))
//
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown(ctx)
//
//	// Open a document
//	client.OpenDocument(ctx, "/path/to/file.go", content)
//
//	// Request completions
//	result, err := client.Complete(ctx, "/path/to/file.go", lsp.Position{Line: 10, Character: 5}, "")
//
// # Server Configuration
//
// Servers are configured per-language:
//
//	client := lsp.NewClient(lsp.WithServers(map[string]lsp.ServerConfig{
//	    "go": {
//	        Command:     "gopls",
//	        Args:        []string{"serve"},
//	        LanguageIDs: []string{"go"},
//	    },
//	    "rust": {
//	        Command:     "rust-analyzer",
//	        LanguageIDs: []string{"rust"},
//	    },
//	}))
//
// # Features
//
// The LSP client supports:
//   - Code completion with filtering and sorting
//   - Hover information
//   - Go-to-definition/type-definition
//   - Find references
//   - Document and workspace symbols
//   - Real-time diagnostics (errors, warnings)
//   - Code actions (quick fixes, refactorings)
//   - Document formatting
//   - Symbol renaming
//   - Signature help
//
// # Multi-Server Support
//
// The Manager handles multiple concurrent language servers. Servers are started
// lazily when files of that language are opened, and shut down gracefully when
// no longer needed.
//
// # Crash Recovery
//
// Servers are monitored and automatically restarted on crash with exponential
// backoff. Open documents are re-synced to the new server instance.
//
// # Thread Safety
//
// The Client and Manager are safe for concurrent use. Individual Server instances
// use internal locking for thread safety.
//
// # Integration
//
// The LSP client integrates with:
//   - lspadapter: translates rename/extract/reference requests to LSP
//     requests and WorkspaceEdits back into edit plans
//   - mcpserver: the navigation tools call Client directly
//   - Analysis engine: lspadapter's CountReferences backs dead-code detection
package lsp
