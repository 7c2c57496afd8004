package planner

import (
	"os"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/checksum"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// declKeyword returns the local-variable declaration keyword a language
// uses, for ExtractVariable's synthesized declaration line.
func declKeyword(language lang.ProjectLanguage) string {
	switch language {
	case lang.TypeScript, lang.JavaScript:
		return "const "
	case lang.Python:
		return ""
	case lang.Rust:
		return "let "
	case lang.Go:
		return ""
	case lang.Java:
		return "var "
	default:
		return ""
	}
}

func assignOperator(language lang.ProjectLanguage) string {
	if language == lang.Go {
		return " := "
	}
	return " = "
}

func statementTerminator(language lang.ProjectLanguage) string {
	switch language {
	case lang.TypeScript, lang.JavaScript, lang.Java, lang.Rust, lang.Go:
		return ";"
	default:
		return ""
	}
}

// ExtractVariable extracts the expression at selection (which must lie
// within a single line and must not itself be a declaration) into a new
// local variable declared on the line above, replacing the selected span
// with a reference to it.
func (p *Planner) ExtractVariable(filePath string, language lang.ProjectLanguage, selection plan.SourceLocation, varName string) (*plan.EditPlan, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if selection.StartLine != selection.EndLine || selection.StartLine < 0 || selection.StartLine >= len(lines) {
		return nil, ErrNotExtractable
	}
	line := lines[selection.StartLine]
	if selection.EndColumn > len(line) || selection.StartColumn >= selection.EndColumn {
		return nil, ErrNotExtractable
	}
	expr := line[selection.StartColumn:selection.EndColumn]
	if strings.Contains(expr, ";") || isDeclarationLine(line) {
		return nil, ErrNotExtractable
	}

	indent := leadingWhitespace(line)
	declLine := indent + declKeyword(language) + varName + assignOperator(language) + expr + statementTerminator(language) + "\n"

	edits := []plan.TextEdit{
		{
			EditType: plan.EditInsert, FilePath: filePath,
			Location:    plan.SourceLocation{StartLine: selection.StartLine, StartColumn: 0, EndLine: selection.StartLine, EndColumn: 0},
			NewText:     declLine,
			Priority:    10,
			Description: "insert extracted variable declaration",
		},
		{
			EditType: plan.EditReplace, FilePath: filePath,
			Location:     selection,
			OriginalText: expr,
			NewText:      varName,
			Priority:     5,
			Description:  "replace expression with extracted variable",
		},
	}
	return p.finishEditPlan("extract_variable", filePath, edits, map[string]any{"name": varName})
}

var lineCommentPrefix = map[lang.ProjectLanguage]string{
	lang.Go: "//", lang.TypeScript: "//", lang.JavaScript: "//", lang.Java: "//", lang.Rust: "//", lang.Python: "#",
}

// ExtractConstant finds every code-position occurrence (skipping string
// literals and line comments) of the literal at selection and replaces
// each with constName, inserting the constant's declaration at the top of
// the file.
func (p *Planner) ExtractConstant(filePath string, language lang.ProjectLanguage, selection plan.SourceLocation, constName string) (*plan.EditPlan, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if selection.StartLine < 0 || selection.StartLine >= len(lines) {
		return nil, ErrNotExtractable
	}
	line := lines[selection.StartLine]
	if selection.EndColumn > len(line) || selection.StartColumn >= selection.EndColumn {
		return nil, ErrNotExtractable
	}
	literal := line[selection.StartColumn:selection.EndColumn]
	if literal == "" {
		return nil, ErrNotExtractable
	}

	prefix := lineCommentPrefix[language]
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(literal) + `\b`)

	var edits []plan.TextEdit
	for lineNum, l := range lines {
		code := l
		if prefix != "" {
			if idx := strings.Index(code, prefix); idx >= 0 {
				code = code[:idx]
			}
		}
		masked := maskStringLiterals(code)
		for _, loc := range pattern.FindAllStringIndex(masked, -1) {
			edits = append(edits, plan.TextEdit{
				EditType: plan.EditReplace, FilePath: filePath,
				Location:     plan.SourceLocation{StartLine: lineNum, StartColumn: loc[0], EndLine: lineNum, EndColumn: loc[1]},
				OriginalText: literal,
				NewText:      constName,
				Priority:     5,
				Description:  "replace literal with extracted constant",
			})
		}
	}
	if len(edits) == 0 {
		return nil, ErrNotExtractable
	}

	declLine := constDeclLine(language, constName, literal)
	edits = append(edits, plan.TextEdit{
		EditType: plan.EditInsert, FilePath: filePath,
		Location:    plan.SourceLocation{StartLine: 0, StartColumn: 0, EndLine: 0, EndColumn: 0},
		NewText:     declLine,
		Priority:    10,
		Description: "insert extracted constant declaration",
	})

	return p.finishEditPlan("extract_constant", filePath, edits, map[string]any{"name": constName, "value": literal})
}

func constDeclLine(language lang.ProjectLanguage, name, value string) string {
	switch language {
	case lang.Go:
		return "const " + name + " = " + value + "\n"
	case lang.TypeScript, lang.JavaScript:
		return "const " + name + " = " + value + ";\n"
	case lang.Python:
		return name + " = " + value + "\n"
	case lang.Rust:
		return "const " + name + ": i64 = " + value + ";\n"
	case lang.Java:
		return "private static final int " + name + " = " + value + ";\n"
	default:
		return name + " = " + value + "\n"
	}
}

func isDeclarationLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, kw := range []string{"var ", "let ", "const ", "fn ", "func ", "def "} {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}
	return strings.Contains(trimmed, ":=")
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

var stringLiteralMask = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)

func maskStringLiterals(line string) string {
	return stringLiteralMask.ReplaceAllStringFunc(line, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
}

// funcDecl renders a minimal function definition containing body verbatim,
// per spec.md's note that extract-function's AST fallback is deliberately
// minimal: the user reviews and the LSP finishes parameter/return inference.
func funcDecl(language lang.ProjectLanguage, name string, body []string) string {
	var b strings.Builder
	switch language {
	case lang.Go:
		b.WriteString("func " + name + "() {\n")
		for _, l := range body {
			b.WriteString(l + "\n")
		}
		b.WriteString("}\n\n")
	case lang.TypeScript, lang.JavaScript:
		b.WriteString("function " + name + "() {\n")
		for _, l := range body {
			b.WriteString(l + "\n")
		}
		b.WriteString("}\n\n")
	case lang.Python:
		b.WriteString("def " + name + "():\n")
		for _, l := range body {
			b.WriteString("    " + l + "\n")
		}
		b.WriteString("\n")
	case lang.Rust:
		b.WriteString("fn " + name + "() {\n")
		for _, l := range body {
			b.WriteString(l + "\n")
		}
		b.WriteString("}\n\n")
	case lang.Java:
		b.WriteString("private void " + name + "() {\n")
		for _, l := range body {
			b.WriteString(l + "\n")
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

func callExpr(language lang.ProjectLanguage, name string) string {
	if language == lang.Python {
		return name + "()"
	}
	return name + "();"
}

// ExtractFunction is the AST-fallback: it verbatim-lifts the selected
// lines into a new function and replaces the selection with a call. The
// extract tool calls it directly; no LSP refactor.extract.function code
// action is tried before it.
func (p *Planner) ExtractFunction(filePath string, language lang.ProjectLanguage, selection plan.SourceLocation, funcName string) (*plan.EditPlan, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if selection.StartLine < 0 || selection.EndLine >= len(lines) || selection.StartLine > selection.EndLine {
		return nil, ErrNotExtractable
	}
	body := append([]string(nil), lines[selection.StartLine:selection.EndLine+1]...)

	edits := []plan.TextEdit{
		{
			EditType: plan.EditInsert, FilePath: filePath,
			Location:    plan.SourceLocation{StartLine: selection.EndLine + 1, StartColumn: 0, EndLine: selection.EndLine + 1, EndColumn: 0},
			NewText:     funcDecl(language, funcName, body),
			Priority:    10,
			Description: "insert extracted function",
		},
		{
			EditType: plan.EditReplace, FilePath: filePath,
			Location: plan.SourceLocation{
				StartLine: selection.StartLine, StartColumn: 0,
				EndLine: selection.EndLine, EndColumn: len(lines[selection.EndLine]),
			},
			NewText:     leadingWhitespace(lines[selection.StartLine]) + callExpr(language, funcName),
			Priority:    5,
			Description: "replace selection with call to extracted function",
		},
	}
	return p.finishEditPlan("extract_function", filePath, edits, map[string]any{"name": funcName})
}

func (p *Planner) finishEditPlan(intent, sourceFile string, edits []plan.TextEdit, args any) (*plan.EditPlan, error) {
	editPlan := plan.NewEditPlan(sourceFile, edits)
	editPlan.Metadata = newMetadata(intent, args)
	sums, err := checksum.Compute(edits)
	if err != nil {
		return nil, err
	}
	editPlan.FileChecksums = sums
	return editPlan, nil
}
