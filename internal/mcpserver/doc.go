// Package mcpserver frames MCP tool calls as JSON-RPC 2.0 messages over
// stdio or WebSocket and routes them through a dispatcher.Dispatcher.
//
// The wire framing over stdio reuses the LSP base protocol's
// Content-Length-header style (see internal/lsp/transport.go), the same
// framing the outbound LSP client already speaks; here it's read in the
// opposite direction, as a server. The WebSocket transport sends one
// complete JSON-RPC object per message, matching gorilla/websocket's
// message-oriented API, with no Content-Length framing needed.
//
// handlers.go registers the refactoring/analysis tool surface: extract,
// inline, analyze.quality, analyze.dead_code, analyze.circular_dependencies
// and analyze_imports, plus the pass-through file tools (create_file,
// read_file, write_file, delete_file, list_files). lsptools.go registers
// rename, move and the LSP-assisted analyze.dead_code, and is only called
// once a language server client has started. navtools.go registers the read-only LSP client
// contract: find_definition, find_type_definition, find_implementations,
// find_references, get_document_symbols, search_workspace_symbols,
// get_hover, get_signature_help, get_diagnostics, get_code_actions,
// organize_imports, format_document, and format_range.
package mcpserver
