package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/plan"
)

// ComplexityFindings converts FunctionMetrics that cross t's thresholds
// into Findings, one per metric that crosses its threshold.
func ComplexityFindings(metrics []FunctionMetrics, filePath string, t Thresholds) []Finding {
	var findings []Finding
	for _, fm := range metrics {
		loc := plan.SourceLocation{StartLine: fm.StartLine, EndLine: fm.EndLine}

		if fm.Cyclomatic > t.CyclomaticComplexity {
			findings = append(findings, Finding{
				Kind: KindComplexityCyclomatic, Severity: severityFor(fm.Cyclomatic, t.CyclomaticComplexity),
				Location: loc, Metrics: map[string]float64{"cyclomatic_complexity": float64(fm.Cyclomatic)},
				Message: fmt.Sprintf("function %q has cyclomatic complexity %d (>%d)", fm.Name, fm.Cyclomatic, t.CyclomaticComplexity),
			})
		}
		if fm.Cognitive > t.CognitiveComplexity {
			findings = append(findings, Finding{
				Kind: KindComplexityCognitive, Severity: severityFor(fm.Cognitive, t.CognitiveComplexity),
				Location: loc, Metrics: map[string]float64{"cognitive_complexity": float64(fm.Cognitive)},
				Message: fmt.Sprintf("function %q has cognitive complexity %d (>%d)", fm.Name, fm.Cognitive, t.CognitiveComplexity),
			})
		}
		if fm.MaxNesting > t.NestingDepth {
			findings = append(findings, Finding{
				Kind: KindComplexityNesting, Severity: SeverityMedium,
				Location: loc, Metrics: map[string]float64{"nesting_depth": float64(fm.MaxNesting)},
				Message: fmt.Sprintf("function %q nests %d levels deep (>%d)", fm.Name, fm.MaxNesting, t.NestingDepth),
			})
		}
		if fm.ParamCount > t.ParameterCount {
			findings = append(findings, Finding{
				Kind: KindComplexityParams, Severity: SeverityLow,
				Location: loc, Metrics: map[string]float64{"parameter_count": float64(fm.ParamCount)},
				Message: fmt.Sprintf("function %q takes %d parameters (>%d)", fm.Name, fm.ParamCount, t.ParameterCount),
			})
		}
		if fm.SLOC > t.FunctionLength {
			findings = append(findings, Finding{
				Kind: KindSmellLongMethod, Severity: severityFor(fm.SLOC, t.FunctionLength*2),
				Location: loc, Metrics: map[string]float64{"sloc": float64(fm.SLOC)},
				Message: fmt.Sprintf("function %q is %d lines long (>%d recommended)", fm.Name, fm.SLOC, t.FunctionLength),
			})
		}
	}
	return findings
}

func severityFor(value, threshold int) Severity {
	switch {
	case value > threshold*2:
		return SeverityHigh
	case value > threshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// GodClassFindings flags files whose function count within a class body
// exceeds 20, the threshold quality.rs uses. classFunctionCounts maps a
// class/struct name to how many functions complexity analysis attributed
// to it.
func GodClassFindings(classFunctionCounts map[string]int) []Finding {
	var findings []Finding
	for name, count := range classFunctionCounts {
		if count <= 20 {
			continue
		}
		findings = append(findings, Finding{
			Kind:     KindSmellGodClass,
			Severity: SeverityMedium,
			Metrics:  map[string]float64{"method_count": float64(count)},
			Message:  fmt.Sprintf("class/module %q has too many methods (%d, >20 recommended)", name, count),
		})
	}
	return findings
}

var magicNumberPattern = regexp.MustCompile(`[^\w.]([2-9]|[1-9]\d+)(?:\.\d+)?\b`)

// DetectMagicNumbers flags bare numeric literals outside string literals
// and line comments, skipping 0 and 1 as quality.rs does.
func DetectMagicNumbers(content, commentPrefix string) []Finding {
	var findings []Finding
	for lineNum, line := range strings.Split(content, "\n") {
		code := stripTrailingComment(line, commentPrefix)
		code = stripStringLiterals(code)
		for _, loc := range magicNumberPattern.FindAllStringIndex(code, -1) {
			findings = append(findings, Finding{
				Kind:     KindSmellMagicNumber,
				Severity: SeverityLow,
				Location: plan.SourceLocation{StartLine: lineNum, EndLine: lineNum, StartColumn: loc[0], EndColumn: loc[1]},
				Message:  fmt.Sprintf("magic number %q", strings.TrimSpace(code[loc[0]:loc[1]])),
			})
		}
	}
	return findings
}

func stripTrailingComment(line, prefix string) string {
	if prefix == "" {
		return line
	}
	if idx := strings.Index(line, prefix); idx >= 0 {
		return line[:idx]
	}
	return line
}

var stringLiteralPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)

func stripStringLiterals(line string) string {
	return stringLiteralPattern.ReplaceAllStringFunc(line, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
}

// DetectDuplicateCode hashes each normalized line and flags lines (beyond a
// minimum length, to skip braces-only noise) that recur minOccurrences or
// more times across the file, matching quality.rs's stated line-level
// fallback for duplicate-code detection (no token-window similarity, since
// no tree-sitter tokenizer is wired).
func DetectDuplicateCode(content string, minOccurrences int) []Finding {
	if minOccurrences < 2 {
		minOccurrences = 2
	}
	lineNumbers := make(map[string][]int)
	for lineNum, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 20 {
			continue
		}
		h := sha256.Sum256([]byte(trimmed))
		key := hex.EncodeToString(h[:8])
		lineNumbers[key] = append(lineNumbers[key], lineNum)
	}

	var findings []Finding
	for _, lines := range lineNumbers {
		if len(lines) < minOccurrences {
			continue
		}
		findings = append(findings, Finding{
			Kind:     KindSmellDuplicateCode,
			Severity: SeverityLow,
			Location: plan.SourceLocation{StartLine: lines[0], EndLine: lines[0]},
			Metrics:  map[string]float64{"occurrences": float64(len(lines))},
			Message:  fmt.Sprintf("line repeated %d times (also at lines %v)", len(lines), lines[1:]),
		})
	}
	return findings
}
