// Package tsadapter implements lang.Adapter for TypeScript and JavaScript.
//
// Import parsing covers ES module imports, CommonJS require() calls, and
// dynamic import() expressions via regexp — a lighter approach than a full
// ES/TS parser, grounded on the same line-oriented extraction style as the
// project package's graph.GoParser, adapted to JS/TS's several import
// forms. Relative-specifier rewriting on rename resolves the specifier to
// an absolute path and back to a path relative to the importer's new
// location, matching the import-path-resolver behavior spec.md describes.
package tsadapter
