package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/refactorengine/internal/analysis"
	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/lspadapter"
	"github.com/dshills/refactorengine/internal/plan"
	"github.com/dshills/refactorengine/internal/planner"
)

// collectCandidateFiles walks root collecting every file whose extension
// adapter handles, the candidateFiles set RenameFile/RenameDirectory scan
// for importers to rewrite.
func collectCandidateFiles(root string, adapter lang.Adapter) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if adapter.HandlesExtension(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// adapterForDir finds the registered adapter whose manifest file is
// present directly under dir.
func adapterForDir(registry *lang.Registry, dir string) (lang.Adapter, bool) {
	for _, adapter := range registry.Adapters() {
		if _, err := os.Stat(filepath.Join(dir, adapter.ManifestFilename())); err == nil {
			return adapter, true
		}
	}
	return nil, false
}

// RegisterLSPTools binds rename (file and directory targets through the
// planner, symbol targets through the *lspadapter.Adapter), move, and
// LSP-assisted dead-code detection. Call this only when a live LSP client started successfully;
// analyze.dead_code silently reports nothing without it.
func RegisterLSPTools(disp *dispatcher.Dispatcher, pl *planner.Planner, registry *lang.Registry, adapter *lspadapter.Adapter) {
	disp.Register("rename", handleRename(pl, registry, adapter))
	disp.Register("move", handleMove(pl, registry))
	disp.Register("analyze.dead_code", handleAnalyzeDeadCodeLSP(adapter))
}

type renameTarget struct {
	Kind    string `json:"kind"` // "file", "directory", or "symbol"
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

type renameOptions struct {
	Scope  string `json:"scope,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

type renameParams struct {
	Targets []renameTarget `json:"targets"`
	Options renameOptions  `json:"options,omitempty"`
}

func handleRename(pl *planner.Planner, registry *lang.Registry, adapter *lspadapter.Adapter) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params renameParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		scope := planner.RenameScope(params.Options.Scope)
		if scope == "" {
			scope = planner.ScopeStandard
		}

		merged := &plan.RenamePlan{Changes: map[string][]plan.TextEdit{}}
		for _, target := range params.Targets {
			var (
				rp  *plan.RenamePlan
				err error
			)
			switch target.Kind {
			case "symbol":
				rp, err = renameSymbolTarget(ctx, adapter, target)
			case "directory":
				rp, err = renameDirectoryTarget(ctx, pl, registry, scope, target)
			default:
				rp, err = renameFileTarget(ctx, pl, registry, scope, target)
			}
			if err != nil {
				return nil, err
			}
			mergeRenamePlan(merged, rp)
		}
		return merged, nil
	}
}

func renameSymbolTarget(ctx context.Context, adapter *lspadapter.Adapter, target renameTarget) (*plan.RenamePlan, error) {
	if adapter == nil {
		return nil, fmt.Errorf("mcpserver: symbol rename requires a running LSP client")
	}
	path, startLine, startCol, _, _, err := parseSourceLocator(target.Path)
	if err != nil {
		return nil, err
	}
	ep, handled, err := adapter.RenameSymbol(ctx, path, lsp.Position{Line: startLine, Character: startCol}, target.NewName)
	if err != nil {
		return nil, err
	}
	if !handled {
		return nil, fmt.Errorf("mcpserver: language server returned no rename edit for %q", target.Path)
	}
	return plan.FromEditPlan(ep, ""), nil
}

func renameFileTarget(ctx context.Context, pl *planner.Planner, registry *lang.Registry, scope planner.RenameScope, target renameTarget) (*plan.RenamePlan, error) {
	adapter, ok := registry.ForFile(target.Path)
	if !ok {
		return nil, planner.ErrNoAdapter
	}
	candidates, err := collectCandidateFiles(filepath.Dir(target.Path), adapter)
	if err != nil {
		return nil, err
	}
	return pl.RenameFile(ctx, target.Path, target.NewName, scope, candidates)
}

func renameDirectoryTarget(ctx context.Context, pl *planner.Planner, registry *lang.Registry, scope planner.RenameScope, target renameTarget) (*plan.RenamePlan, error) {
	adapter, ok := adapterForDir(registry, target.Path)
	if !ok {
		return nil, planner.ErrNoAdapter
	}
	candidates, err := collectCandidateFiles(target.Path, adapter)
	if err != nil {
		return nil, err
	}
	rp, _, err := pl.RenameDirectory(ctx, adapter, target.Path, target.NewName, scope, candidates)
	return rp, err
}

func mergeRenamePlan(into, from *plan.RenamePlan) {
	if from == nil {
		return
	}
	for file, edits := range from.Changes {
		into.Changes[file] = append(into.Changes[file], edits...)
	}
	into.Summary.Affected += from.Summary.Affected
	into.Summary.Created += from.Summary.Created
	into.Summary.Deleted += from.Summary.Deleted
	into.Warnings = append(into.Warnings, from.Warnings...)
	if into.Metadata.Language == "" {
		into.Metadata = from.Metadata
	}
	if into.FileChecksums == nil {
		into.FileChecksums = map[string]string{}
	}
	for file, sum := range from.FileChecksums {
		into.FileChecksums[file] = sum
	}
}

type moveParams struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func handleMove(pl *planner.Planner, registry *lang.Registry) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params moveParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		adapter, ok := adapterForDir(registry, params.Source)
		if !ok {
			return nil, planner.ErrNoAdapter
		}
		candidates, err := collectCandidateFiles(params.Source, adapter)
		if err != nil {
			return nil, err
		}
		rp, _, err := pl.RenameDirectory(ctx, adapter, params.Source, params.Destination, planner.ScopeEverything, candidates)
		if err != nil {
			return nil, err
		}
		return renamePlanToEditPlan(rp, params.Source), nil
	}
}

// renamePlanToEditPlan flattens a RenamePlan's per-file Changes back into a
// single EditPlan: the move tool's contract returns an EditPlan rather
// than the richer rename-summary shape the rename tool uses.
func renamePlanToEditPlan(rp *plan.RenamePlan, sourceFile string) *plan.EditPlan {
	var edits []plan.TextEdit
	for _, fileEdits := range rp.Changes {
		edits = append(edits, fileEdits...)
	}
	ep := plan.NewEditPlan(sourceFile, edits)
	ep.FileChecksums = rp.FileChecksums
	ep.IsConsolidation = len(rp.Warnings) > 0
	return ep
}

func handleAnalyzeDeadCodeLSP(adapter *lspadapter.Adapter) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params analyzeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		if adapter == nil {
			return &analysis.AnalysisResult{FilePath: params.Path}, nil
		}
		symbols, err := adapter.Symbols(ctx, params.Path)
		if err != nil {
			return nil, err
		}
		findings, err := analysis.DetectDeadCode(ctx, params.Path, symbols, adapter)
		if err != nil {
			return nil, err
		}
		return &analysis.AnalysisResult{FilePath: params.Path, Findings: findings}, nil
	}
}
