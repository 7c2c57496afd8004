// Package lang defines the Adapter contract every supported language
// implements — import parsing, manifest generation, import rewriting, and
// module-reference search — plus a registry keyed by file extension and
// manifest filename.
//
// Adapter generalizes the extension-to-language-ID lookup in
// lsp.LanguageIDForExtension and the per-language source-graph parsers in
// the project package's graph.LanguageParser (Language/FileExtensions/Parse)
// into a single richer contract the planner can drive without knowing which
// language it is working with.
package lang
