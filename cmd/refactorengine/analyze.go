package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/refactorengine/internal/analysis"
)

// AnalyzeCommand runs the same complexity/magic-number/duplicate-code
// checks the analyze.quality MCP tool does, against a single file, and
// prints the result as JSON — useful for a quick check without standing
// up the full server.
type AnalyzeCommand struct {
	Path string `arg:"" help:"Source file to analyze"`
}

// Run reads Path, analyzes it, and writes the findings to stdout as JSON.
func (cmd *AnalyzeCommand) Run() error {
	content, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	registry := buildRegistry()
	adapter, ok := registry.ForFile(cmd.Path)
	if !ok {
		return fmt.Errorf("analyze: no language adapter for %q", cmd.Path)
	}
	metrics := analysis.AnalyzeComplexity(string(content), string(adapter.Language()))

	var findings []analysis.Finding
	findings = append(findings, analysis.ComplexityFindings(metrics, cmd.Path, analysis.DefaultThresholds())...)
	findings = append(findings, analysis.DetectMagicNumbers(string(content), "//")...)
	findings = append(findings, analysis.DetectDuplicateCode(string(content), 3)...)

	result := &analysis.AnalysisResult{FilePath: cmd.Path, Findings: findings}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
