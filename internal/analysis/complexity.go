package analysis

import (
	"regexp"
	"strings"
)

// FunctionMetrics holds the per-function measurements complexity.go
// computes and smells.go consumes.
type FunctionMetrics struct {
	Name       string
	StartLine  int
	EndLine    int
	Cyclomatic int
	Cognitive  int
	MaxNesting int
	ParamCount int
	SLOC       int
}

var funcStartPatterns = map[string]*regexp.Regexp{
	"go":         regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(([^)]*)\)`),
	"typescript": regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)\)`),
	"javascript": regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)\)`),
	"java":       regexp.MustCompile(`^\s*(?:public|private|protected|static|final|\s)+[\w<>\[\]]+\s+(\w+)\s*\(([^)]*)\)\s*\{?`),
	"rust":       regexp.MustCompile(`^\s*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)\s*\(([^)]*)\)`),
	"python":     regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(([^)]*)\)`),
}

var decisionKeywords = regexp.MustCompile(`\b(if|else if|elif|for|while|case|catch|except)\b|&&|\|\|`)

// AnalyzeComplexity scans content lexically, locating function bodies by
// brace balance (Python by indentation) and scoring each one. A function
// whose body extends past the end of content is still reported, scored
// over the lines it does have.
func AnalyzeComplexity(content, language string) []FunctionMetrics {
	lines := strings.Split(content, "\n")
	pattern := funcStartPatterns[strings.ToLower(language)]
	if pattern == nil {
		return nil
	}

	var metrics []FunctionMetrics
	if strings.ToLower(language) == "python" {
		return analyzePythonFunctions(lines, pattern)
	}

	for i := 0; i < len(lines); i++ {
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		name := m[1]
		params := m[2]
		end := findBraceEnd(lines, i)
		metrics = append(metrics, scoreFunction(name, params, lines, i, end))
		if end > i {
			i = end
		}
	}
	return metrics
}

// findBraceEnd returns the line index where the brace opened on or after
// start closes, or the last line if it never closes within content.
func findBraceEnd(lines []string, start int) int {
	depth := 0
	seenOpen := false
	for i := start; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
			}
		}
		if seenOpen && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

func analyzePythonFunctions(lines []string, pattern *regexp.Regexp) []FunctionMetrics {
	var metrics []FunctionMetrics
	for i := 0; i < len(lines); i++ {
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		indent := len(m[1])
		name := m[2]
		params := m[3]
		end := i
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimRight(lines[j], " \t")
			if trimmed == "" {
				end = j
				continue
			}
			lineIndent := len(lines[j]) - len(strings.TrimLeft(lines[j], " \t"))
			if lineIndent <= indent {
				break
			}
			end = j
		}
		metrics = append(metrics, scoreFunction(name, params, lines, i, end))
		i = end
	}
	return metrics
}

func scoreFunction(name, params string, lines []string, start, end int) FunctionMetrics {
	fm := FunctionMetrics{
		Name:       name,
		StartLine:  start,
		EndLine:    end,
		SLOC:       end - start + 1,
		Cyclomatic: 1,
		ParamCount: countParams(params),
	}

	depth := 0
	for i := start; i <= end && i < len(lines); i++ {
		line := lines[i]
		opens := strings.Count(line, "{") + strings.Count(line, ":")
		closes := strings.Count(line, "}")
		hits := decisionKeywords.FindAllString(line, -1)
		for range hits {
			fm.Cyclomatic++
			fm.Cognitive += 1 + depth
		}
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
		if depth > fm.MaxNesting {
			fm.MaxNesting = depth
		}
	}
	return fm
}

func countParams(params string) int {
	params = strings.TrimSpace(params)
	if params == "" {
		return 0
	}
	return len(strings.Split(params, ","))
}
