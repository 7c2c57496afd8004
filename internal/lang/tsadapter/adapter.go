package tsadapter

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// Adapter implements lang.Adapter for TypeScript/JavaScript.
type Adapter struct{}

// New creates a TypeScript/JavaScript language adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Language() lang.ProjectLanguage { return lang.TypeScript }
func (a *Adapter) ManifestFilename() string       { return "package.json" }
func (a *Adapter) SourceDir() string              { return "src" }
func (a *Adapter) EntryPoint() string             { return "src/index.ts" }
func (a *Adapter) ModuleSeparator() string         { return "/" }

var extRegex = regexp.MustCompile(`(?i)\.(ts|tsx|js|jsx|mjs|cjs)$`)

func (a *Adapter) HandlesExtension(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return extRegex.MatchString(ext)
}

// LocateModuleFiles resolves a relative specifier against packagePath,
// trying the conventional TS/JS extension and index-file fallbacks.
func (a *Adapter) LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error) {
	base := filepath.Join(packagePath, filepath.FromSlash(modulePath))
	candidates := []string{
		base + ".ts", base + ".tsx", base + ".js", base + ".jsx",
		filepath.Join(base, "index.ts"), filepath.Join(base, "index.tsx"),
		filepath.Join(base, "index.js"),
	}
	var found []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		return nil, lang.ErrModuleNotFound
	}
	return found, nil
}

var (
	esImportRegex  = regexp.MustCompile(`import\s+(?:type\s+)?(?:([\w$]+)\s*,?\s*)?(?:\{([^}]*)\})?\s*(?:\*\s+as\s+([\w$]+))?\s*from\s*['"]([^'"]+)['"]`)
	requireRegex   = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicImportRegex = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ParseImports extracts ES module imports, CommonJS requires, and dynamic
// imports from file.
func (a *Adapter) ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parseImportsFromSource(string(content)), nil
}

func parseImportsFromSource(content string) []plan.ImportInfo {
	var imports []plan.ImportInfo
	lines := strings.Split(content, "\n")

	for lineNum, line := range lines {
		typeOnly := strings.Contains(line, "import type")

		if m := esImportRegex.FindStringSubmatch(line); m != nil {
			info := plan.ImportInfo{
				ModulePath:      m[4],
				ImportType:      plan.ImportEsModule,
				DefaultImport:   m[1],
				NamespaceImport: m[3],
				TypeOnly:        typeOnly,
				Location:        lineLocation(lineNum, line),
			}
			if named := strings.TrimSpace(m[2]); named != "" {
				for _, part := range strings.Split(named, ",") {
					part = strings.TrimSpace(part)
					if part == "" {
						continue
					}
					info.NamedImports = append(info.NamedImports, parseNamedImport(part))
				}
			}
			imports = append(imports, info)
			continue
		}
		if m := requireRegex.FindStringSubmatch(line); m != nil {
			imports = append(imports, plan.ImportInfo{
				ModulePath: m[1],
				ImportType: plan.ImportCommonJs,
				Location:   lineLocation(lineNum, line),
			})
			continue
		}
		if m := dynamicImportRegex.FindStringSubmatch(line); m != nil {
			imports = append(imports, plan.ImportInfo{
				ModulePath: m[1],
				ImportType: plan.ImportDynamic,
				Location:   lineLocation(lineNum, line),
			})
		}
	}
	return imports
}

func parseNamedImport(part string) plan.NamedImport {
	typeOnly := strings.HasPrefix(part, "type ")
	part = strings.TrimPrefix(part, "type ")
	if idx := strings.Index(part, " as "); idx >= 0 {
		return plan.NamedImport{Name: strings.TrimSpace(part[:idx]), Alias: strings.TrimSpace(part[idx+4:]), TypeOnly: typeOnly}
	}
	return plan.NamedImport{Name: strings.TrimSpace(part), TypeOnly: typeOnly}
}

func lineLocation(lineNum int, line string) plan.SourceLocation {
	return plan.SourceLocation{StartLine: lineNum, EndLine: lineNum, StartColumn: 0, EndColumn: len(line)}
}

// GenerateManifest renders a minimal package.json.
func (a *Adapter) GenerateManifest(name string, deps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{\n  \"name\": %q,\n  \"version\": \"0.1.0\"", name)
	if len(deps) > 0 {
		b.WriteString(",\n  \"dependencies\": {\n")
		for i, d := range deps {
			fmt.Fprintf(&b, "    %q: \"*\"", d)
			if i < len(deps)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("  }")
	}
	b.WriteString("\n}\n")
	return b.String()
}

// RewriteImport renders a bare specifier replacement.
func (a *Adapter) RewriteImport(old, newPkgName string) string {
	return newPkgName
}

// RewriteImportsForRename re-resolves every relative import specifier that
// points at oldPath to point at newPath, expressed relative to
// importingFile's directory.
func (a *Adapter) RewriteImportsForRename(content, oldPath, newPath, importingFile, projectRoot string, renameInfo map[string]any) (string, int, error) {
	count := 0
	importerDir := filepath.Dir(importingFile)

	absOld := resolveSpecifier(importerDir, oldPath)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		spec := extractSpecifier(line)
		if spec == "" {
			continue
		}
		if !strings.HasPrefix(spec, ".") {
			continue // not a relative import; leave bare-module specifiers alone
		}
		resolved := resolveSpecifier(importerDir, spec)
		if resolved != absOld {
			continue
		}
		newSpecifier := relativeSpecifier(importerDir, newPath)
		lines[i] = strings.Replace(line, spec, newSpecifier, 1)
		count++
	}
	return strings.Join(lines, "\n"), count, nil
}

func extractSpecifier(line string) string {
	if m := esImportRegex.FindStringSubmatch(line); m != nil {
		return m[4]
	}
	if m := requireRegex.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := dynamicImportRegex.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

func resolveSpecifier(fromDir, specifier string) string {
	return path.Clean(path.Join(filepath.ToSlash(fromDir), specifier))
}

func relativeSpecifier(fromDir, target string) string {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

// FindModuleReferences finds import/require declarations and, when scope
// widens to All, bare string-literal occurrences of moduleName.
func (a *Adapter) FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error) {
	var refs []plan.ModuleReference
	for lineNum, line := range strings.Split(content, "\n") {
		spec := extractSpecifier(line)
		if spec == moduleName {
			col := strings.Index(line, spec)
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: col, Length: len(spec), Text: spec, Kind: plan.RefDeclaration,
			})
			continue
		}
		if scope == plan.ScopeAll && strings.Contains(line, moduleName) {
			col := strings.Index(line, moduleName)
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: col, Length: len(moduleName), Text: moduleName, Kind: plan.RefStringLiteral,
			})
		}
	}
	return refs, nil
}

var _ lang.Adapter = (*Adapter)(nil)
