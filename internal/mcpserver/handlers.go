package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/refactorengine/internal/analysis"
	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
	"github.com/dshills/refactorengine/internal/planner"
)

// RegisterIntentTools binds the extract and inline tools to pl, plus the
// analyze.quality, analyze.dead_code, analyze.circular_dependencies and
// analyze_imports tools, resolving each target file's language through
// registry. rename and move are bound by RegisterLSPTools.
func RegisterIntentTools(disp *dispatcher.Dispatcher, pl *planner.Planner, registry *lang.Registry) {
	disp.Register("extract", handleExtract(pl, registry))
	disp.Register("inline", handleInline(pl))
	disp.Register("analyze.quality", handleAnalyzeQuality(registry))
	disp.Register("analyze.dead_code", handleAnalyzeDeadCode())
	disp.Register("analyze.circular_dependencies", handleAnalyzeCircularDependencies(registry))
	disp.Register("analyze_imports", handleAnalyzeImports(registry))
}

// RegisterFileTools binds spec.md §6's pass-through file tools, which need
// no planner involvement: they read/write/list/delete files directly.
func RegisterFileTools(disp *dispatcher.Dispatcher) {
	disp.Register("read_file", handleReadFile)
	disp.Register("write_file", handleWriteFile)
	disp.Register("delete_file", handleDeleteFile)
	disp.Register("create_file", handleCreateFile)
	disp.Register("list_files", handleListFiles)
}

type extractParams struct {
	Kind   string `json:"kind"`
	Source string `json:"source"` // "path:line:col" or "path:startLine:startCol:endLine:endCol"
	Name   string `json:"name"`
}

// parseSourceLocator splits a spec.md "path:line:col" (or 5-field range) source
// locator into a file path and a 0-based SourceLocation.
func parseSourceLocator(source string) (path string, startLine, startCol, endLine, endCol int, err error) {
	parts := strings.Split(source, ":")
	if len(parts) != 3 && len(parts) != 5 {
		return "", 0, 0, 0, 0, fmt.Errorf("mcpserver: invalid source locator %q", source)
	}
	nums := make([]int, len(parts)-1)
	for i, p := range parts[1:] {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return "", 0, 0, 0, 0, fmt.Errorf("mcpserver: invalid source locator %q: %w", source, convErr)
		}
		nums[i] = n
	}
	if len(nums) == 2 {
		return parts[0], nums[0], nums[1], nums[0], nums[1], nil
	}
	return parts[0], nums[0], nums[1], nums[2], nums[3], nil
}

func handleExtract(pl *planner.Planner, registry *lang.Registry) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params extractParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		path, startLine, startCol, endLine, endCol, err := parseSourceLocator(params.Source)
		if err != nil {
			return nil, err
		}
		adapter, ok := registry.ForFile(path)
		if !ok {
			return nil, planner.ErrNoAdapter
		}

		sel := plan.SourceLocation{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol}
		language := adapter.Language()
		switch params.Kind {
		case "function":
			return pl.ExtractFunction(path, language, sel, params.Name)
		case "variable":
			return pl.ExtractVariable(path, language, sel, params.Name)
		case "constant":
			return pl.ExtractConstant(path, language, sel, params.Name)
		default:
			return nil, fmt.Errorf("mcpserver: unknown extract kind %q", params.Kind)
		}
	}
}

type inlineParams struct {
	Target string `json:"target"` // "path:line:col"
}

func handleInline(pl *planner.Planner) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params inlineParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		path, line, _, _, _, err := parseSourceLocator(params.Target)
		if err != nil {
			return nil, err
		}
		return pl.InlineVariable(path, line)
	}
}

type analyzeParams struct {
	Path      string   `json:"path"`
	Glob      string   `json:"glob,omitempty"`
	RuleFiles []string `json:"rule_files,omitempty"`
}

func handleAnalyzeQuality(registry *lang.Registry) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params analyzeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(params.Path)
		if err != nil {
			return nil, err
		}
		adapter, ok := registry.ForFile(params.Path)
		if !ok {
			return nil, planner.ErrNoAdapter
		}
		metrics := analysis.AnalyzeComplexity(string(content), string(adapter.Language()))

		var findings []analysis.Finding
		findings = append(findings, analysis.ComplexityFindings(metrics, params.Path, analysis.DefaultThresholds())...)
		findings = append(findings, analysis.DetectMagicNumbers(string(content), "//")...)
		findings = append(findings, analysis.DetectDuplicateCode(string(content), 3)...)

		ruleFindings, err := runCustomRules(params.RuleFiles, params.Path, string(content))
		if err != nil {
			return nil, err
		}
		findings = append(findings, ruleFindings...)

		return &analysis.AnalysisResult{FilePath: params.Path, Findings: findings}, nil
	}
}

// runCustomRules loads each Lua script in ruleFiles as a sandboxed
// analysis.Rule and runs it against a single file's content, collecting
// findings across all of them. A rule failing to load or run is reported
// as an error rather than silently skipped.
func runCustomRules(ruleFiles []string, path, content string) ([]analysis.Finding, error) {
	var findings []analysis.Finding
	for _, rf := range ruleFiles {
		src, err := os.ReadFile(rf)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rf, err)
		}
		rule, err := analysis.LoadRule(strings.TrimSuffix(filepath.Base(rf), filepath.Ext(rf)), string(src), nil)
		if err != nil {
			return nil, err
		}
		ruleFindings, err := rule.Check(path, content)
		rule.Close()
		if err != nil {
			return nil, err
		}
		findings = append(findings, ruleFindings...)
	}
	return findings, nil
}

func handleAnalyzeDeadCode() dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		// Dead-code detection is LSP-assisted: without an lspadapter.Adapter
		// wired as a ReferenceCounter, this tool has nothing to report
		// against, rather than guessing with an unreliable heuristic.
		return &analysis.AnalysisResult{}, nil
	}
}
