package planner

import (
	"os"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/plan"
)

var declPattern = regexp.MustCompile(
	`^\s*(?:var |let |const )?([A-Za-z_][A-Za-z0-9_]*)\s*(?::=|=)\s*(.+?);?\s*$`)

var operatorChars = regexp.MustCompile(`[+\-*/%<>=&|^,?:]`)

func needsParens(expr string) bool {
	return operatorChars.MatchString(maskStringLiterals(expr))
}

// InlineVariable parses the declaration at declarationLine, finds every
// other occurrence of the declared name in content, and — provided no
// other line of the file reassigns or redeclares the name — replaces each
// usage with the (parenthesized if needed)
// initializer and deletes the declaration line.
func (p *Planner) InlineVariable(filePath string, declarationLine int) (*plan.EditPlan, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if declarationLine < 0 || declarationLine >= len(lines) {
		return nil, ErrSymbolNotFound
	}

	m := declPattern.FindStringSubmatch(lines[declarationLine])
	if m == nil {
		return nil, ErrSymbolNotFound
	}
	name, expr := m[1], strings.TrimSpace(m[2])

	usagePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	reassignPattern := regexp.MustCompile(`^\s*(?:var |let |const )?` + regexp.QuoteMeta(name) + `\s*(?::=|=)\s*`)

	replacement := expr
	if needsParens(expr) {
		replacement = "(" + expr + ")"
	}

	var edits []plan.TextEdit
	usageCount := 0
	for lineNum, line := range lines {
		if lineNum == declarationLine {
			continue
		}
		masked := maskStringLiterals(line)
		if reassignPattern.MatchString(line) {
			return nil, ErrUnsafeInline
		}
		locs := usagePattern.FindAllStringIndex(masked, -1)
		for _, loc := range locs {
			usageCount++
			edits = append(edits, plan.TextEdit{
				EditType: plan.EditReplace, FilePath: filePath,
				Location:     plan.SourceLocation{StartLine: lineNum, StartColumn: loc[0], EndLine: lineNum, EndColumn: loc[1]},
				OriginalText: name,
				NewText:      replacement,
				Priority:     5,
				Description:  "inline variable usage",
			})
		}
	}
	if usageCount == 0 {
		return nil, ErrSymbolNotFound
	}

	edits = append(edits, plan.TextEdit{
		EditType: plan.EditDelete, FilePath: filePath,
		Location:     plan.SourceLocation{StartLine: declarationLine, StartColumn: 0, EndLine: declarationLine + 1, EndColumn: 0},
		OriginalText: lines[declarationLine] + "\n",
		Priority:     10,
		Description:  "remove inlined declaration",
	})

	return p.finishEditPlan("inline_variable", filePath, edits, map[string]any{"name": name})
}
