package javaadapter

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

// Adapter implements lang.Adapter for Java.
type Adapter struct{}

// New creates a Java language adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Language() lang.ProjectLanguage { return lang.Java }
func (a *Adapter) ManifestFilename() string       { return "pom.xml" }
func (a *Adapter) SourceDir() string              { return "src/main/java" }
func (a *Adapter) EntryPoint() string             { return "Main.java" }
func (a *Adapter) ModuleSeparator() string         { return "." }

func (a *Adapter) HandlesExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "java")
}

// LocateModuleFiles resolves a fully-qualified class name to its source
// file under packagePath's source root, following Java's package-to-path
// convention.
func (a *Adapter) LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error) {
	rel := strings.ReplaceAll(modulePath, ".", string(filepath.Separator))
	candidate := filepath.Join(packagePath, rel+".java")
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return []string{candidate}, nil
	}
	return nil, lang.ErrModuleNotFound
}

var importRegex = regexp.MustCompile(`^import\s+(static\s+)?([\w.]+(?:\.\*)?)\s*;`)

// ParseImports extracts `import` declarations.
func (a *Adapter) ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var imports []plan.ImportInfo
	for lineNum, line := range strings.Split(string(content), "\n") {
		m := importRegex.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		imports = append(imports, plan.ImportInfo{
			ModulePath: m[2],
			ImportType: plan.ImportEsModule,
			Location: plan.SourceLocation{
				StartLine: lineNum, EndLine: lineNum, StartColumn: 0, EndColumn: len(line),
			},
		})
	}
	return imports, nil
}

// GenerateManifest renders a minimal pom.xml.
func (a *Adapter) GenerateManifest(name string, deps []string) string {
	var b strings.Builder
	b.WriteString("<project>\n")
	fmt.Fprintf(&b, "  <artifactId>%s</artifactId>\n", name)
	if len(deps) > 0 {
		b.WriteString("  <dependencies>\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "    <dependency><artifactId>%s</artifactId></dependency>\n", d)
		}
		b.WriteString("  </dependencies>\n")
	}
	b.WriteString("</project>\n")
	return b.String()
}

// RewriteImport renders a single import statement.
func (a *Adapter) RewriteImport(old, newPkgName string) string {
	return "import " + newPkgName + ";"
}

// RewriteImportsForRename replaces occurrences of oldPath's fully
// qualified name with newPath's in import statements and qualified usages.
func (a *Adapter) RewriteImportsForRename(content, oldPath, newPath, importingFile, projectRoot string, renameInfo map[string]any) (string, int, error) {
	count := 0
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, oldPath) {
			lines[i] = strings.ReplaceAll(line, oldPath, newPath)
			count++
		}
	}
	return strings.Join(lines, "\n"), count, nil
}

// FindModuleReferences finds import declarations and, as scope widens,
// qualified method calls on the imported type's simple name
// (`SimpleName.method(`); plain field access is not matched.
func (a *Adapter) FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error) {
	var refs []plan.ModuleReference
	simpleName := moduleName
	if idx := strings.LastIndex(moduleName, "."); idx >= 0 {
		simpleName = moduleName[idx+1:]
	}

	for lineNum, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import") && strings.Contains(line, moduleName) {
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: strings.Index(line, moduleName),
				Length: len(moduleName), Text: moduleName, Kind: plan.RefDeclaration,
			})
			continue
		}
		if scope == plan.ScopeQualifiedPaths || scope == plan.ScopeAll {
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(simpleName) + `\.\w+\(`)
			for _, loc := range pattern.FindAllStringIndex(line, -1) {
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
