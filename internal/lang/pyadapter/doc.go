// Package pyadapter implements lang.Adapter for Python.
//
// Import parsing and rewriting is line-based rather than a full AST parse.
// ParseImports and RewriteImportsForRename take no ScanScope and treat
// nested imports inside def/class bodies like top-level ones;
// FindModuleReferences skips indented lines under ScopeTopLevelOnly and
// visits them for every wider scope.
package pyadapter
