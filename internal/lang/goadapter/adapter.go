package goadapter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// Adapter implements lang.Adapter for Go.
type Adapter struct{}

// New creates a Go language adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Language() lang.ProjectLanguage { return lang.Go }
func (a *Adapter) ManifestFilename() string       { return "go.mod" }
func (a *Adapter) SourceDir() string              { return "." }
func (a *Adapter) EntryPoint() string             { return "main.go" }
func (a *Adapter) ModuleSeparator() string         { return "/" }

func (a *Adapter) HandlesExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "go")
}

// LocateModuleFiles finds the package directory under packagePath whose
// path suffix matches modulePath, and returns its non-test .go files.
func (a *Adapter) LocateModuleFiles(ctx context.Context, packagePath, modulePath string) ([]string, error) {
	suffix := filepath.FromSlash(modulePath)
	var match string

	err := filepath.Walk(packagePath, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasSuffix(p, suffix) {
			match = p
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if match == "" {
		return nil, lang.ErrModuleNotFound
	}

	entries, err := os.ReadDir(match)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") || strings.HasSuffix(e.Name(), "_test.go") {
			continue
		}
		files = append(files, filepath.Join(match, e.Name()))
	}
	return files, nil
}

var importLineRegex = regexp.MustCompile(`"([^"]+)"(?:\s*//.*)?$`)
var importAliasRegex = regexp.MustCompile(`^(\w+)\s+"([^"]+)"`)

// ParseImports extracts the import block of a Go source file.
func (a *Adapter) ParseImports(ctx context.Context, file string) ([]plan.ImportInfo, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parseImportsFromSource(content), nil
}

func parseImportsFromSource(content []byte) []plan.ImportInfo {
	var imports []plan.ImportInfo
	scanner := bufio.NewScanner(bytes.NewReader(content))
	inBlock := false
	lineNum := 0

	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		lineNum++

		if !inBlock {
			if strings.HasPrefix(line, "import (") {
				inBlock = true
				continue
			}
			if strings.HasPrefix(line, "import ") {
				if info, ok := parseImportLine(strings.TrimPrefix(line, "import "), lineNum); ok {
					imports = append(imports, info)
				}
				continue
			}
			if strings.HasPrefix(line, "package ") || strings.HasPrefix(line, "func ") {
				// Past any possible import point.
				if strings.HasPrefix(line, "func ") {
					break
				}
				continue
			}
			continue
		}

		if line == ")" {
			inBlock = false
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if info, ok := parseImportLine(line, lineNum); ok {
			imports = append(imports, info)
		}
	}
	return imports
}

func parseImportLine(line string, lineNum int) (plan.ImportInfo, bool) {
	line = strings.TrimSpace(line)
	if aliasMatch := importAliasRegex.FindStringSubmatch(line); aliasMatch != nil {
		alias := aliasMatch[1]
		path := aliasMatch[2]
		info := plan.ImportInfo{
			ModulePath: path,
			ImportType: plan.ImportEsModule,
			Location: plan.SourceLocation{
				StartLine: lineNum - 1, EndLine: lineNum - 1,
				StartColumn: 0, EndColumn: len(line),
			},
		}
		switch alias {
		case "_":
			info.NamedImports = []plan.NamedImport{{Name: "_", Alias: "_"}}
		case ".":
			info.NamespaceImport = "."
		default:
			info.DefaultImport = alias
		}
		return info, true
	}
	if match := importLineRegex.FindStringSubmatch(line); match != nil {
		return plan.ImportInfo{
			ModulePath: match[1],
			ImportType: plan.ImportEsModule,
			Location: plan.SourceLocation{
				StartLine: lineNum - 1, EndLine: lineNum - 1,
				StartColumn: 0, EndColumn: len(line),
			},
		}, true
	}
	return plan.ImportInfo{}, false
}

// GenerateManifest renders a minimal go.mod.
func (a *Adapter) GenerateManifest(name string, deps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n\ngo 1.25\n", name)
	if len(deps) > 0 {
		b.WriteString("\nrequire (\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "\t%s v0.0.0\n", d)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// RewriteImport renders a single import path as a quoted Go import spec.
func (a *Adapter) RewriteImport(old, newPkgName string) string {
	return strconv.Quote(newPkgName)
}

// RewriteImportsForRename replaces every import of oldPath with newPath in
// content, leaving everything else untouched.
func (a *Adapter) RewriteImportsForRename(content, oldPath, newPath, importingFile, projectRoot string, renameInfo map[string]any) (string, int, error) {
	lines := strings.Split(content, "\n")
	count := 0
	oldQuoted := `"` + oldPath + `"`
	newQuoted := `"` + newPath + `"`

	for i, line := range lines {
		if strings.Contains(line, oldQuoted) {
			lines[i] = strings.ReplaceAll(line, oldQuoted, newQuoted)
			count++
		}
	}
	return strings.Join(lines, "\n"), count, nil
}

var selectorRegex = regexp.MustCompile(`\b(\w+)\.(\w+)\b`)

// FindModuleReferences finds import declarations and, as scope widens,
// selector-expression usages and string-literal occurrences of moduleName.
func (a *Adapter) FindModuleReferences(content, moduleName string, scope plan.ScanScope) ([]plan.ModuleReference, error) {
	alias := moduleName
	if idx := strings.LastIndex(moduleName, "/"); idx >= 0 {
		alias = moduleName[idx+1:]
	}

	var refs []plan.ModuleReference
	lines := strings.Split(content, "\n")

	for lineNum, line := range lines {
		if strings.Contains(line, `"`+moduleName+`"`) {
			col := strings.Index(line, `"`+moduleName+`"`)
			refs = append(refs, plan.ModuleReference{
				Line: lineNum, Column: col, Length: len(moduleName) + 2,
				Text: moduleName, Kind: plan.RefDeclaration,
			})
		}

		if scope == plan.ScopeQualifiedPaths || scope == plan.ScopeAll {
			for _, m := range selectorRegex.FindAllStringSubmatchIndex(line, -1) {
				if line[m[2]:m[3]] != alias {
					continue
				}
				refs = append(refs, plan.ModuleReference{
					Line: lineNum, Column: m[0], Length: m[1] - m[0],
					Text: line[m[0]:m[1]], Kind: plan.RefQualifiedPath,
				})
			}
		}

		if scope == plan.ScopeAll {
			searchFrom := 0
			for {
				idx := strings.Index(line[searchFrom:], moduleName)
				if idx < 0 {
					break
				}
				absIdx := searchFrom + idx
				if !strings.Contains(line[:absIdx], `"`+moduleName+`"`) {
					refs = append(refs, plan.ModuleReference{
						Line: lineNum, Column: absIdx, Length: len(moduleName),
						Text: moduleName, Kind: plan.RefStringLiteral,
					})
				}
				searchFrom = absIdx + len(moduleName)
			}
		}
	}
	return refs, nil
}

var _ lang.Adapter = (*Adapter)(nil)
