// Package analysis implements the three analysis kinds spec.md names:
// complexity, code smells, and dead code. It is grounded on
// quality.rs (detect_smells/analyze_maintainability) from original_source,
// adapted from that file's AST-driven metrics to the same regex/line-based
// heuristics internal/lang's adapters already use elsewhere in this module
// — there is no tree-sitter or go/ast-equivalent multi-language parser
// wired in, so function boundaries, decision points, and nesting are
// found lexically rather than structurally.
//
// Dead-code detection is LSP-assisted per spec.md: this package only
// defines the ReferenceCounter seam a caller backs with an LSP adapter's
// find_references; it does not itself talk to a language server.
//
// Custom rules run as sandboxed Lua via internal/plugin/lua, reusing its
// State/Sandbox/Bridge rather than inventing a second scripting layer.
package analysis
