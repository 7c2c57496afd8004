// Package lspadapter sits between the planner and internal/lsp: it turns a
// planner intent into an LSP request, and an LSP WorkspaceEdit result back
// into a plan.EditPlan, so the planner never imports LSP protocol types
// directly.
//
// RenameSymbol and ExtractFunction report whether the language server
// produced a usable result, returning false with a nil error when no
// client is set or no edit was offered; choosing a fallback is left to the
// caller. The planner itself does not call this package: mcpserver's rename
// tool uses RenameSymbol for symbol targets (and reports an error when it
// returns false), and ExtractFunction has no caller outside its tests.
// Grounded on original_source/crates/cb-plugins/src/adapters/lsp_adapter.rs
// for which LSP request backs which intent: refactor.extract.function for
// function extraction, textDocument/rename for symbol rename, and
// textDocument/references for dead-code reference counting. File renames
// are not sent to the server (there is no workspace/willRenameFiles request
// here); internal/planner plans them.
package lspadapter
