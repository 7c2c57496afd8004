package planner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// ExtractModuleToPackageParams bundles ExtractModuleToPackage's arguments.
type ExtractModuleToPackageParams struct {
	OldFile           string
	NewPackageDir     string
	PackageName       string
	ParentFile        string   // file that currently declares/imports oldFile; may be empty
	SourceManifest    string   // manifest of the package oldFile is moving out of; may be empty
	WorkspaceManifest string   // workspace root manifest listing members; may be empty
	ReferencingFiles  []string // every file that may import oldFile, for the workspace-wide rewrite
}

// ExtractModuleToPackage plans pulling a single source file out into its
// own package, per spec.md §4.7's priority ordering: create manifest (100),
// create entry point (90), delete the old file (80), remove the parent's
// mod/import declaration (70), add the new package as a dependency of the
// source manifest (60), add it as a workspace member (50), then rewrite
// every workspace reference (40).
func (p *Planner) ExtractModuleToPackage(ctx context.Context, adapter lang.Adapter, params ExtractModuleToPackageParams) (*plan.EditPlan, error) {
	oldContent, err := os.ReadFile(params.OldFile)
	if err != nil {
		return nil, err
	}

	imports, err := adapter.ParseImports(ctx, params.OldFile)
	if err != nil {
		return nil, err
	}
	deps := make([]string, 0, len(imports))
	seen := map[string]bool{}
	for _, imp := range imports {
		if !seen[imp.ModulePath] {
			seen[imp.ModulePath] = true
			deps = append(deps, imp.ModulePath)
		}
	}

	manifestPath := filepath.Join(params.NewPackageDir, adapter.ManifestFilename())
	entryPath := filepath.Join(params.NewPackageDir, adapter.EntryPoint())
	moduleBase := strings.TrimSuffix(filepath.Base(params.OldFile), filepath.Ext(params.OldFile))

	var edits []plan.TextEdit
	edits = append(edits, plan.TextEdit{
		EditType: plan.EditInsert, FilePath: manifestPath,
		NewText:     adapter.GenerateManifest(params.PackageName, deps),
		Priority:    PriorityCreateManifest,
		Description: "create package manifest",
	})
	edits = append(edits, plan.TextEdit{
		EditType: plan.EditInsert, FilePath: entryPath,
		NewText:     string(oldContent),
		Priority:    PriorityCreateEntry,
		Description: "create package entry point",
	})
	edits = append(edits, plan.TextEdit{
		EditType: plan.EditDelete, FilePath: params.OldFile,
		Priority: PriorityDeleteOld, Description: "remove original file",
	})

	if params.ParentFile != "" {
		parentContent, err := os.ReadFile(params.ParentFile)
		if err == nil {
			if rewritten, removed := removeModuleDeclaration(string(parentContent), moduleBase); removed {
				edits = append(edits, plan.TextEdit{
					EditType: plan.EditReplace, FilePath: params.ParentFile,
					NewText:     rewritten,
					Priority:    PriorityRemoveModDecl,
					Description: "remove parent's declaration of the extracted module",
				})
			}
		}
	}

	if params.SourceManifest != "" {
		manifestContent, err := os.ReadFile(params.SourceManifest)
		if err == nil {
			edits = append(edits, plan.TextEdit{
				EditType: plan.EditReplace, FilePath: params.SourceManifest,
				NewText:     addManifestDependency(string(manifestContent), params.PackageName),
				Priority:    PriorityAddDependency,
				Description: "add new package as a dependency",
			})
		}
	}

	if params.WorkspaceManifest != "" {
		if content, err := os.ReadFile(params.WorkspaceManifest); err == nil {
			edits = append(edits, plan.TextEdit{
				EditType: plan.EditReplace, FilePath: params.WorkspaceManifest,
				NewText:     addWorkspaceMember(string(content), params.NewPackageDir),
				Priority:    PriorityAddWorkspaceDep,
				Description: "register new package as a workspace member",
			})
		} else {
			edits = append(edits, plan.TextEdit{
				EditType: plan.EditInsert, FilePath: params.WorkspaceManifest,
				NewText:     newWorkspaceManifest(params.NewPackageDir),
				Priority:    PriorityAddWorkspaceDep,
				Description: "create workspace manifest listing new package",
			})
		}
	}

	projectRoot := filepath.Dir(params.OldFile)
	for _, candidate := range params.ReferencingFiles {
		if candidate == params.ParentFile || candidate == params.OldFile {
			continue
		}
		content, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		rewritten, count, err := adapter.RewriteImportsForRename(
			string(content), params.OldFile, entryPath, candidate, projectRoot, nil)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		edits = append(edits, plan.TextEdit{
			EditType: plan.EditReplace, FilePath: candidate, NewText: rewritten,
			Priority: PriorityRewriteImports, Description: "rewrite reference to extracted package",
		})
	}

	return p.finishEditPlan("extract_module_to_package", params.OldFile, edits, map[string]any{
		"package_name": params.PackageName, "new_package_dir": params.NewPackageDir,
	})
}

// removeModuleDeclaration strips the first line in content that looks like
// a mod/import declaration of moduleName, reporting whether it found one.
func removeModuleDeclaration(content, moduleName string) (string, bool) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !removed && looksLikeModuleDecl(trimmed, moduleName) {
			removed = true
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), removed
}

func looksLikeModuleDecl(trimmed, moduleName string) bool {
	candidates := []string{
		"mod " + moduleName + ";",
		"import " + moduleName,
		"import \"" + moduleName + "\"",
		"from " + moduleName + " import",
	}
	for _, c := range candidates {
		if strings.Contains(trimmed, c) {
			return true
		}
	}
	return false
}

// addManifestDependency appends a minimal TOML-style dependency line for
// packageName to manifestContent. Content ending in "}" (a JSON manifest)
// is returned with trailing newlines trimmed and no dependency added. It is
// used for every language; no adapter-specific manifest editing is done.
func addManifestDependency(manifestContent, packageName string) string {
	if strings.HasSuffix(strings.TrimSpace(manifestContent), "}") {
		return strings.TrimRight(manifestContent, "\n")
	}
	return manifestContent + "\n" + packageName + " = { path = \"./" + packageName + "\" }\n"
}

func addWorkspaceMember(manifestContent, newPackageDir string) string {
	member := filepath.Base(newPackageDir)
	if strings.Contains(manifestContent, member) {
		return manifestContent
	}
	return manifestContent + "\nmembers += [\"" + member + "\"]\n"
}

func newWorkspaceManifest(newPackageDir string) string {
	return "[workspace]\nmembers = [\"" + filepath.Base(newPackageDir) + "\"]\n"
}
