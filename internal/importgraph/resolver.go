package importgraph

import (
	"path/filepath"
	"strings"
)

// Resolver carries the per-language extensionless-specifier probe order
// used when resolving a relative import to a file already present in the
// graph. Languages absent from the map fall back to a single empty-suffix
// probe (the specifier already names a real file).
type Resolver struct {
	ExtensionProbes map[string][]string
}

// NewResolver returns a Resolver seeded with the probe orders spec.md names
// for TypeScript/JavaScript, plus the sibling languages in the adapter set.
func NewResolver() *Resolver {
	return &Resolver{
		ExtensionProbes: map[string][]string{
			"typescript":      {"", ".ts", ".tsx", ".js", ".jsx", ".json"},
			"typescriptreact": {"", ".tsx", ".ts", ".jsx", ".js", ".json"},
			"javascript":      {"", ".js", ".jsx", ".ts", ".tsx", ".json"},
			"javascriptreact": {"", ".jsx", ".js", ".tsx", ".ts", ".json"},
			"python":          {"", ".py"},
			"go":              {"", ".go"},
			"rust":            {"", ".rs"},
			"java":            {"", ".java"},
		},
	}
}

// isRelative reports whether spec is a relative module specifier.
func isRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".."
}

// resolveRelative joins spec against fromFile's directory and probes the
// language's extension list for a file already known to exist.
func (r *Resolver) resolveRelative(fromFile, spec, language string, exists func(string) bool) (string, bool) {
	base := filepath.Dir(fromFile)
	joined := filepath.Clean(filepath.Join(base, spec))

	probes := r.ExtensionProbes[language]
	if len(probes) == 0 {
		probes = []string{""}
	}
	for _, ext := range probes {
		candidate := joined + ext
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// resolveBare finds the file whose path ends with modulePath or /modulePath,
// per spec.md's bare-specifier resolution rule. Since a bare specifier
// rarely carries the target's file extension (Go import paths, TS path-map
// aliases), each of probes is also tried appended to modulePath.
func (r *Resolver) resolveBare(modulePath, language string, files []string) (string, bool) {
	if f, ok := matchSuffix(modulePath, files); ok {
		return f, true
	}
	for _, ext := range r.ExtensionProbes[language] {
		if ext == "" {
			continue
		}
		if f, ok := matchSuffix(modulePath+ext, files); ok {
			return f, true
		}
	}
	return "", false
}

func matchSuffix(candidate string, files []string) (string, bool) {
	for _, f := range files {
		if f == candidate || strings.HasSuffix(f, "/"+candidate) {
			return f, true
		}
	}
	return "", false
}
