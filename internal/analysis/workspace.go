package analysis

import (
	"context"
	"path/filepath"
)

// FileAnalyzer analyzes one file, returning its findings.
type FileAnalyzer func(ctx context.Context, path string) ([]Finding, error)

// AnalyzeWorkspace runs analyze over every entry of files whose base name
// matches glob (a filepath.Match pattern, e.g. "*.go"; an empty glob matches
// every file), aggregating per-file results and omitting files with no
// findings. files is the candidate file list (typically produced by a
// workspace walk elsewhere); AnalyzeWorkspace only filters and dispatches.
func AnalyzeWorkspace(ctx context.Context, files []string, glob string, analyze FileAnalyzer) ([]AnalysisResult, error) {
	var results []AnalysisResult
	for _, file := range files {
		if glob != "" {
			matched, err := filepath.Match(glob, filepath.Base(file))
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}

		findings, err := analyze(ctx, file)
		if err != nil {
			return nil, err
		}
		if len(findings) == 0 {
			continue
		}
		results = append(results, AnalysisResult{FilePath: file, Findings: findings})
	}
	return results, nil
}
