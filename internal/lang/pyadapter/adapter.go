package pyadapter

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

// Adapter implements lang.Adapter for Python.
type Adapter struct{}

// New creates a Python language adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Language() lang.ProjectLanguage { return lang.Python }
func (a *Adapter) ManifestFilename() string       { return "pyproject.toml" }
func (a *Adapter) SourceDir() string              { return "src" }
func (a *Adapter) EntryPoint() string             { return "__main__.py" }
func (a *Adapter) ModuleSeparator() string         { return "." }

func (a *Adapter) HandlesExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "py")
}

// LocateModuleFiles resolves a dotted module path to a module.py or
// module/__init__.py under packagePath.
func (a *Adapter) LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error) {
	rel := strings.ReplaceAll(modulePath, ".", string(filepath.Separator))
	candidate := filepath.Join(packagePath, rel+".py")
	if fileExists(candidate) {
		return []string{candidate}, nil
	}
	candidate = filepath.Join(packagePath, rel, "__init__.py")
	if fileExists(candidate) {
		return []string{candidate}, nil
	}
	return nil, lang.ErrModuleNotFound
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var (
	importRegex     = regexp.MustCompile(`^(\s*)import\s+([\w.]+)(?:\s+as\s+(\w+))?`)
	fromImportRegex = regexp.MustCompile(`^(\s*)from\s+([\w.]+)\s+import\s+(.+)`)
)

// ParseImports extracts `import x` and `from x import y` statements,
// including nested ones (indentation > 0). The returned ImportInfo values
// do not record whether an import was nested.
func (a *Adapter) ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parseImportsFromSource(string(content)), nil
}

func parseImportsFromSource(content string) []plan.ImportInfo {
	var imports []plan.ImportInfo
	for lineNum, line := range strings.Split(content, "\n") {
		if m := fromImportRegex.FindStringSubmatch(line); m != nil {
			info := plan.ImportInfo{
				ModulePath: m[2],
				ImportType: plan.ImportEsModule,
				Location:   lineLocation(lineNum, line),
			}
			for _, name := range strings.Split(m[3], ",") {
				name = strings.TrimSpace(strings.Trim(name, "()"))
				if name == "" {
					continue
				}
				if idx := strings.Index(name, " as "); idx >= 0 {
					info.NamedImports = append(info.NamedImports, plan.NamedImport{
						Name: strings.TrimSpace(name[:idx]), Alias: strings.TrimSpace(name[idx+4:]),
					})
				} else {
					info.NamedImports = append(info.NamedImports, plan.NamedImport{Name: name})
				}
			}
			imports = append(imports, info)
			continue
		}
		if m := importRegex.FindStringSubmatch(line); m != nil {
			imports = append(imports, plan.ImportInfo{
				ModulePath:    m[2],
				ImportType:    plan.ImportEsModule,
				DefaultImport: m[3],
				Location:      lineLocation(lineNum, line),
			})
		}
	}
	return imports
}

func lineLocation(lineNum int, line string) plan.SourceLocation {
	return plan.SourceLocation{StartLine: lineNum, EndLine: lineNum, StartColumn: 0, EndColumn: len(line)}
}

// GenerateManifest renders a minimal pyproject.toml.
func (a *Adapter) GenerateManifest(name string, deps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[project]\nname = \"%s\"\nversion = \"0.1.0\"\n", name)
	if len(deps) > 0 {
		b.WriteString("dependencies = [\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "  \"%s\",\n", d)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// RewriteImport renders a bare dotted-module replacement.
func (a *Adapter) RewriteImport(old, newPkgName string) string {
	return newPkgName
}

// RewriteImportsForRename replaces every occurrence of oldPath's dotted
// module name with newPath's on any line of content, nested or top-level,
// import statement or not; it takes no ScanScope.
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

// FindModuleReferences finds import declarations, restricting to
// top-level ones unless scope widens to include nested imports.
func (a *Adapter) FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error) {
	var refs []plan.ModuleReference
	for lineNum, line := range strings.Split(content, "\n") {
		indented := len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
		if indented && scope == plan.ScopeTopLevelOnly {
			continue
		}
		if strings.Contains(line, moduleName) && (strings.Contains(line, "import") || scope == plan.ScopeAll) {
			col := strings.Index(line, moduleName)
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: col, Length: len(moduleName), Text: moduleName,
				Kind: referenceKind(line, moduleName),
			})
		}
	}
	return refs, nil
}

func referenceKind(line, moduleName string) plan.ReferenceKind {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
		return plan.RefDeclaration
	}
	if strings.Contains(line, `"`+moduleName+`"`) || strings.Contains(line, `'`+moduleName+`'`) {
		return plan.RefStringLiteral
	}
	return plan.RefQualifiedPath
}

var _ lang.Adapter = (*Adapter)(nil)
