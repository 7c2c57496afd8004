package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/importgraph"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
	"github.com/dshills/refactorengine/internal/planner"
)

// circularDependenciesResult is analyze.circular_dependencies' payload: one
// entry per cycle, each an ordered file list starting from the back edge's
// target (see importgraph.Graph.FindCycles).
type circularDependenciesResult struct {
	Cycles [][]string `json:"cycles"`
}

// buildImportGraph parses every candidate file's imports through adapter
// and links them into a Graph, so a single file's analyze_imports call sees
// the same resolved Importers/CircularDependencies an analyze.circular_dependencies
// call over the same file set would.
func buildImportGraph(ctx context.Context, adapter lang.Adapter, files []string) (*importgraph.Graph, error) {
	graphs := make([]plan.ImportGraph, 0, len(files))
	for _, f := range files {
		imports, err := adapter.ParseImports(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("mcpserver: parsing imports for %q: %w", f, err)
		}
		graphs = append(graphs, plan.ImportGraph{
			SourceFile: f,
			Imports:    imports,
			Metadata:   plan.ImportGraphMetadata{Language: string(adapter.Language())},
		})
	}
	return importgraph.Build(graphs, importgraph.NewResolver()), nil
}

func handleAnalyzeImports(registry *lang.Registry) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params analyzeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		adapter, ok := registry.ForFile(params.Path)
		if !ok {
			return nil, planner.ErrNoAdapter
		}
		candidates, err := collectCandidateFiles(filepath.Dir(params.Path), adapter)
		if err != nil {
			return nil, err
		}
		graph, err := buildImportGraph(ctx, adapter, candidates)
		if err != nil {
			return nil, err
		}
		ig, ok := graph.File(params.Path)
		if !ok {
			return nil, fmt.Errorf("mcpserver: %q not found in its own import graph", params.Path)
		}
		return &ig, nil
	}
}

func handleAnalyzeCircularDependencies(registry *lang.Registry) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params analyzeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		adapter, ok := registry.ForFile(params.Path)
		if !ok {
			return nil, planner.ErrNoAdapter
		}
		candidates, err := collectCandidateFiles(filepath.Dir(params.Path), adapter)
		if err != nil {
			return nil, err
		}
		graph, err := buildImportGraph(ctx, adapter, candidates)
		if err != nil {
			return nil, err
		}
		return &circularDependenciesResult{Cycles: graph.FindCycles()}, nil
	}
}
