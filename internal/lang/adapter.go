package lang

import (
	"context"

	"github.com/dshills/refactorengine/internal/plan"
)

// ProjectLanguage enumerates the languages a language Adapter can target.
type ProjectLanguage string

const (
	Go         ProjectLanguage = "go"
	TypeScript ProjectLanguage = "typescript"
	JavaScript ProjectLanguage = "javascript"
	Python     ProjectLanguage = "python"
	Rust       ProjectLanguage = "rust"
	Java       ProjectLanguage = "java"
)

// Adapter is the uniform per-language contract the planner, import graph,
// and analysis engine drive without caring which language they are
// working with.
//
// Every method is deterministic given its inputs; adapters hold no mutable
// state beyond what is needed to memoize parses (see Cache in the
// concurrency package). Blocking operations take a context.Context so a
// caller using a tree-sitter or subprocess-backed adapter can cancel a
// long-running parse.
type Adapter interface {
	// Language returns the language this adapter implements.
	Language() ProjectLanguage
	// ManifestFilename returns the conventional manifest file name for
	// this ecosystem ("go.mod", "package.json", "Cargo.toml",
	// "pyproject.toml", "pom.xml").
	ManifestFilename() string
	// SourceDir returns the conventional source root for this ecosystem
	// ("src", "." for Go's module-root convention).
	SourceDir() string
	// EntryPoint returns the conventional primary entry file.
	EntryPoint() string
	// ModuleSeparator returns the path separator this language's module
	// system uses ("::" for Rust, "." for Python/Java, "/" for JS/TS).
	ModuleSeparator() string
	// HandlesExtension reports whether ext (with or without a leading
	// dot) is a source extension this adapter parses.
	HandlesExtension(ext string) bool
	// LocateModuleFiles resolves modulePath relative to packagePath to
	// the set of candidate source files it could refer to, in the
	// language's conventional resolution order.
	LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error)
	// ParseImports extracts every import statement from file.
	ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error)
	// GenerateManifest renders a new manifest file for a package named
	// name with the given dependency specifiers.
	GenerateManifest(name string, deps []string) string
	// RewriteImport rewrites a single import specifier old to refer to
	// newPkgName, in the language's import syntax.
	RewriteImport(old, newPkgName string) string
	// RewriteImportsForRename rewrites every import in content that
	// refers to oldPath to refer to newPath instead, resolving relative
	// specifiers from importingFile's location within projectRoot.
	// renameInfo carries language-specific extras (e.g. Rust's
	// consolidation rename fields); it may be nil.
	RewriteImportsForRename(content, oldPath, newPath, importingFile, projectRoot string, renameInfo map[string]any) (string, int, error)
	// FindModuleReferences finds every occurrence of moduleName in
	// content that scope counts as a reference.
	FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error)
}
