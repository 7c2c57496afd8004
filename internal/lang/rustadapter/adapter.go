package rustadapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// Adapter implements lang.Adapter for Rust/Cargo.
type Adapter struct{}

// New creates a Rust language adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Language() lang.ProjectLanguage { return lang.Rust }
func (a *Adapter) ManifestFilename() string       { return "Cargo.toml" }
func (a *Adapter) SourceDir() string              { return "src" }
func (a *Adapter) EntryPoint() string             { return "src/main.rs" }
func (a *Adapter) ModuleSeparator() string         { return "::" }

func (a *Adapter) HandlesExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "rs")
}

// LocateModuleFiles tries src/<path>.rs then src/<path>/mod.rs, matching
// Rust's module resolution order.
func (a *Adapter) LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error) {
	rel := strings.ReplaceAll(modulePath, "::", string(filepath.Separator))

	candidate := filepath.Join(packagePath, "src", rel+".rs")
	if fileExists(candidate) {
		return []string{candidate}, nil
	}
	candidate = filepath.Join(packagePath, "src", rel, "mod.rs")
	if fileExists(candidate) {
		return []string{candidate}, nil
	}
	return nil, lang.ErrModuleNotFound
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var useRegex = regexp.MustCompile(`^use\s+([\w:]+(?:::\{[^}]*\})?)\s*;`)

// ParseImports extracts single-line `use` statements; leading whitespace is
// ignored, so indented (nested) ones are included.
func (a *Adapter) ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var imports []plan.ImportInfo
	for lineNum, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		m := useRegex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		imports = append(imports, plan.ImportInfo{
			ModulePath: m[1],
			ImportType: plan.ImportEsModule,
			Location: plan.SourceLocation{
				StartLine: lineNum, EndLine: lineNum,
				StartColumn: 0, EndColumn: len(line),
			},
		})
	}
	return imports, nil
}

// GenerateManifest renders a minimal Cargo.toml.
func (a *Adapter) GenerateManifest(name string, deps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[package]\nname = \"%s\"\nversion = \"0.1.0\"\nedition = \"2021\"\n", name)
	if len(deps) > 0 {
		b.WriteString("\n[dependencies]\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "%s = \"*\"\n", d)
		}
	}
	return b.String()
}

// RewriteImport renders a single `use` path.
func (a *Adapter) RewriteImport(old, newPkgName string) string {
	return "use " + newPkgName + ";"
}

// RewriteImportsForRename replaces `use oldPath` occurrences with newPath.
// If renameInfo carries consolidation fields (old_crate_name,
// new_import_prefix), references rooted at old_crate_name are rewritten to
// the new import prefix instead of a plain path substitution.
func (a *Adapter) RewriteImportsForRename(content, oldPath, newPath, importingFile, projectRoot string, renameInfo map[string]any) (string, int, error) {
	count := 0
	lines := strings.Split(content, "\n")

	oldCrate, _ := renameInfo["old_crate_name"].(string)
	newPrefix, _ := renameInfo["new_import_prefix"].(string)

	for i, line := range lines {
		if oldCrate != "" && newPrefix != "" && strings.Contains(line, oldCrate+"::") {
			lines[i] = strings.ReplaceAll(line, oldCrate+"::", newPrefix+"::")
			count++
			continue
		}
		if strings.Contains(line, oldPath) {
			lines[i] = strings.ReplaceAll(line, oldPath, newPath)
			count++
		}
	}
	return strings.Join(lines, "\n"), count, nil
}

// FindModuleReferences finds `use` declarations and, as scope widens,
// qualified `module::Symbol` usages.
func (a *Adapter) FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error) {
	var refs []plan.ModuleReference
	qualified := regexp.MustCompile(regexp.QuoteMeta(moduleName) + `::\w+`)

	for lineNum, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "use "+moduleName) {
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: strings.Index(line, moduleName),
				Length: len(moduleName), Text: moduleName, Kind: plan.RefDeclaration,
			})
		}
		if scope == plan.ScopeQualifiedPaths || scope == plan.ScopeAll {
			for _, loc := range qualified.FindAllStringIndex(line, -1) {
				refs = append(refs, plan.ModuleReference{
					Line: lineNum, Column: loc[0], Length: loc[1] - loc[0],
					Text: line[loc[0]:loc[1]], Kind: plan.RefQualifiedPath,
				})
			}
		}
	}
	return refs, nil
}

var _ lang.Adapter = (*Adapter)(nil)
