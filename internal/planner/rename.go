package planner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/refactorengine/internal/checksum"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/lang/rustadapter"
	"github.com/dshills/refactorengine/internal/plan"
)

// RenameFile plans moving oldPath to newPath and rewriting every importer
// in candidateFiles, per spec.md §4.7's rename-file steps. scope is only
// recorded in the plan metadata; it does not narrow which candidates are
// rewritten. No LSP workspace/willRenameFiles request is made by RenameFile
// or its callers: the rewrite is always the adapter-based one.
func (p *Planner) RenameFile(ctx context.Context, oldPath, newPath string, scope RenameScope, candidateFiles []string) (*plan.RenamePlan, error) {
	adapter, ok := p.registry.ForFile(oldPath)
	if !ok {
		return nil, ErrNoAdapter
	}

	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		return nil, err
	}

	var edits []plan.TextEdit
	edits = append(edits,
		plan.TextEdit{
			EditType: plan.EditDelete, FilePath: oldPath,
			Priority: PriorityFileMove, Description: "remove file at old path",
		},
		plan.TextEdit{
			EditType: plan.EditInsert, FilePath: newPath, NewText: string(oldContent),
			Priority: PriorityFileMove, Description: "create file at new path",
		},
	)

	projectRoot := filepath.Dir(oldPath)
	affected := 0
	for _, candidate := range candidateFiles {
		if candidate == oldPath {
			continue
		}
		content, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		rewritten, count, err := adapter.RewriteImportsForRename(
			string(content), oldPath, newPath, candidate, projectRoot, nil)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		affected++
		edits = append(edits, plan.TextEdit{
			EditType: plan.EditReplace, FilePath: candidate, NewText: rewritten,
			Priority: PriorityImportRewrite, Description: "rewrite imports for rename",
		})
	}

	editPlan := plan.NewEditPlan(oldPath, edits)
	editPlan.Metadata = newMetadata("rename_file", map[string]any{
		"old_path": oldPath, "new_path": newPath, "scope": string(scope),
	})
	sums, err := checksum.Compute(edits)
	if err != nil {
		return nil, err
	}
	editPlan.FileChecksums = sums

	renamePlan := plan.FromEditPlan(editPlan, string(adapter.Language()))
	renamePlan.Summary = plan.RenameSummary{Affected: affected, Created: 1, Deleted: 1}
	return renamePlan, nil
}

// ConsolidationInfo describes a detected package-into-package move:
// oldDir has its own manifest, and newDir sits inside another package's
// source directory.
type ConsolidationInfo struct {
	DestManifestDir string
	ManualStepHint  string
	RenameInfo      map[string]any
}

// DetectConsolidation implements spec.md §4.7's consolidation check: oldDir
// carries a manifest and newDir resolves under another package's source
// directory. Returns ok=false (no error) when it's an ordinary directory
// move.
func (p *Planner) DetectConsolidation(adapter lang.Adapter, oldDir, newDir string) (info ConsolidationInfo, ok bool, err error) {
	manifestPath := filepath.Join(oldDir, adapter.ManifestFilename())
	if _, statErr := os.Stat(manifestPath); statErr != nil {
		return ConsolidationInfo{}, false, nil
	}

	if !isUnderSourceDir(newDir, adapter.SourceDir()) {
		return ConsolidationInfo{}, false, nil
	}

	destDir, found := findAncestorManifest(filepath.Dir(newDir), adapter.ManifestFilename())
	if !found {
		return ConsolidationInfo{}, false, nil
	}

	info = ConsolidationInfo{DestManifestDir: destDir, RenameInfo: map[string]any{}}

	if _, isRust := adapter.(*rustadapter.Adapter); isRust {
		consolidation, infoErr := rustadapter.ExtractConsolidationRenameInfo(oldDir, newDir)
		if infoErr != nil {
			return ConsolidationInfo{}, false, infoErr
		}
		info.RenameInfo["old_crate_name"] = consolidation.OldCrateName
		info.RenameInfo["new_import_prefix"] = consolidation.NewImportPrefix
		info.ManualStepHint = "add `pub mod " + consolidation.SubmoduleName + ";` to the consolidating crate's lib.rs/mod.rs"
	} else {
		submodule := filepath.Base(newDir)
		info.ManualStepHint = manualStepHint(adapter, submodule)
	}

	return info, true, nil
}

func manualStepHint(adapter lang.Adapter, submodule string) string {
	switch adapter.Language() {
	case lang.TypeScript, lang.JavaScript:
		return "add `export * from './" + submodule + "';` to the consolidating package's index"
	case lang.Python:
		return "add `from ." + submodule + " import *` to the consolidating package's __init__.py"
	default:
		return "add the equivalent re-export declaration for ." + submodule + " to the consolidating package"
	}
}

func isUnderSourceDir(dir, sourceDir string) bool {
	sourceDir = strings.Trim(filepath.ToSlash(sourceDir), "/")
	if sourceDir == "" || sourceDir == "." {
		return false
	}
	slashDir := filepath.ToSlash(dir)
	return strings.Contains(slashDir, "/"+sourceDir+"/") || strings.HasPrefix(slashDir, sourceDir+"/")
}

// findAncestorManifest walks upward from start looking for a directory
// containing manifestName, stopping at the filesystem root.
func findAncestorManifest(start, manifestName string) (string, bool) {
	current := start
	for {
		if _, err := os.Stat(filepath.Join(current, manifestName)); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// RenameDirectory plans the import rewrites for a package/directory move,
// additionally detecting consolidation (moving a package into another
// package's source tree) and excluding manifest files from generic import
// rewriting when detected. No manifest edits are computed for a
// consolidation, here or by the mcpserver tools that call it.
func (p *Planner) RenameDirectory(ctx context.Context, adapter lang.Adapter, oldDir, newDir string, scope RenameScope, candidateFiles []string) (*plan.RenamePlan, []string, error) {
	consolidation, isConsolidation, err := p.DetectConsolidation(adapter, oldDir, newDir)
	if err != nil {
		return nil, nil, err
	}

	manifestName := adapter.ManifestFilename()
	var warnings []string
	var edits []plan.TextEdit
	projectRoot := filepath.Dir(oldDir)
	affected := 0

	for _, candidate := range candidateFiles {
		if isConsolidation && filepath.Base(candidate) == manifestName {
			continue // manifest semantics handled explicitly by the caller
		}
		content, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		rewritten, count, err := adapter.RewriteImportsForRename(
			string(content), oldDir, newDir, candidate, projectRoot, consolidation.RenameInfo)
		if err != nil {
			return nil, nil, err
		}
		if count == 0 {
			continue
		}
		affected++
		edits = append(edits, plan.TextEdit{
			EditType: plan.EditReplace, FilePath: candidate, NewText: rewritten,
			Priority: PriorityImportRewrite, Description: "rewrite imports for directory rename",
		})
	}

	if isConsolidation {
		warnings = append(warnings, consolidation.ManualStepHint)
	}

	editPlan := plan.NewEditPlan(oldDir, edits)
	editPlan.Metadata = newMetadata("rename_directory", map[string]any{
		"old_dir": oldDir, "new_dir": newDir, "scope": string(scope), "is_consolidation": isConsolidation,
	})
	editPlan.IsConsolidation = isConsolidation
	sums, err := checksum.Compute(edits)
	if err != nil {
		return nil, nil, err
	}
	editPlan.FileChecksums = sums

	renamePlan := plan.FromEditPlan(editPlan, string(adapter.Language()))
	renamePlan.Summary = plan.RenameSummary{Affected: affected}
	renamePlan.Warnings = warnings
	return renamePlan, warnings, nil
}
