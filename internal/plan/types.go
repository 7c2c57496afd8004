package plan

import (
	"encoding/json"
	"time"
)

// SourceLocation identifies a half-open span of text within a single file.
// Lines and columns are zero-based. Columns built by the planner, the
// language adapters and the analyzers are byte offsets within the line;
// locations converted from LSP results keep the server's character offsets.
type SourceLocation struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
}

// Before reports whether l starts strictly before other in the
// (line, column) lexicographic order edits are sorted by.
func (l SourceLocation) Before(other SourceLocation) bool {
	if l.StartLine != other.StartLine {
		return l.StartLine < other.StartLine
	}
	return l.StartColumn < other.StartColumn
}

// Overlaps reports whether l and other share any code point.
func (l SourceLocation) Overlaps(other SourceLocation) bool {
	return l.startsBefore(other.End()) && other.startsBefore(l.End())
}

func (l SourceLocation) startsBefore(p point) bool {
	s := l.Start()
	if s.line != p.line {
		return s.line < p.line
	}
	return s.column < p.column
}

type point struct {
	line, column int
}

// Start returns the location's starting point.
func (l SourceLocation) Start() point { return point{l.StartLine, l.StartColumn} }

// End returns the location's ending point.
func (l SourceLocation) End() point { return point{l.EndLine, l.EndColumn} }

// EditKind distinguishes the three ways a TextEdit mutates a file. The wire
// values match the original plan format exactly (spec §6).
type EditKind string

const (
	EditInsert  EditKind = "Insert"
	EditDelete  EditKind = "Delete"
	EditReplace EditKind = "Replace"
)

// TextEdit is one atomic change to a single file.
//
// For Replace and Delete edits, OriginalText must equal the substring at
// Location in the file's pre-application state, or be empty — an empty
// OriginalText marks a trusted full-file replacement whose only
// precondition is the checksum carried by the enclosing EditPlan.
//
// Within one file, edits are ordered by Priority before position; higher
// priority edits are applied first.
type TextEdit struct {
	EditType     EditKind       `json:"edit_type"`
	FilePath     string         `json:"file_path,omitempty"`
	Location     SourceLocation `json:"location"`
	OriginalText string         `json:"original_text"`
	NewText      string         `json:"new_text"`
	Priority     int            `json:"priority"`
	Description  string         `json:"description"`
}

// DependencyUpdate records a manifest-level change (e.g. a new Cargo.toml
// dependency line) that accompanies an EditPlan's source edits.
type DependencyUpdate struct {
	ManifestPath string `json:"manifest_path"`
	Name         string `json:"name"`
	OldVersion   string `json:"old_version,omitempty"`
	NewVersion   string `json:"new_version,omitempty"`
	Removed      bool   `json:"removed,omitempty"`
}

// Validation is a precondition the executor must re-check immediately
// before applying an EditPlan (e.g. "file still contains this symbol").
type Validation struct {
	RuleType    string         `json:"rule_type"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// EditPlanMetadata is the planner-reported context attached to an EditPlan:
// which intent produced it, with what arguments, and a rough estimate of
// its blast radius.
type EditPlanMetadata struct {
	IntentName     string    `json:"intent_name"`
	IntentArgs     any       `json:"intent_arguments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Complexity     int       `json:"complexity"`
	ImpactAreas    []string  `json:"impact_areas,omitempty"`
}

// EditPlan is a pure, planner-produced description of a set of file
// mutations. It is never mutated after construction; an executor either
// applies it wholesale against its FileChecksums precondition or discards
// it.
//
// Invariants:
//   - Edits sharing a FilePath never overlap (see SourceLocation.Overlaps).
//   - FileChecksums holds the SHA-256 of every file touched by a
//     non-Insert edit, taken at plan time.
//   - Edits() returns edits in the plan's total order:
//     (FilePath, -Priority, Location.Start).
type EditPlan struct {
	SourceFile        string             `json:"source_file"`
	edits             []TextEdit         `json:"-"`
	DependencyUpdates []DependencyUpdate `json:"dependency_updates,omitempty"`
	Validations       []Validation       `json:"validations,omitempty"`
	Metadata          EditPlanMetadata   `json:"metadata"`
	FileChecksums     map[string]string  `json:"file_checksums,omitempty"`
	IsConsolidation   bool               `json:"is_consolidation,omitempty"`
}

// editPlanWire mirrors EditPlan's wire shape (spec §6) with Edits exported
// so encoding/json can see the field the unexported EditPlan.edits slice
// hides from reflection.
type editPlanWire struct {
	SourceFile        string             `json:"source_file"`
	Edits             []TextEdit         `json:"edits"`
	DependencyUpdates []DependencyUpdate `json:"dependency_updates,omitempty"`
	Validations       []Validation       `json:"validations,omitempty"`
	Metadata          EditPlanMetadata   `json:"metadata"`
	FileChecksums     map[string]string  `json:"file_checksums,omitempty"`
	IsConsolidation   bool               `json:"is_consolidation,omitempty"`
}

// MarshalJSON renders the plan in the exact wire shape described in spec §6.
func (p *EditPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(editPlanWire{
		SourceFile:        p.SourceFile,
		Edits:             p.edits,
		DependencyUpdates: p.DependencyUpdates,
		Validations:       p.Validations,
		Metadata:          p.Metadata,
		FileChecksums:     p.FileChecksums,
		IsConsolidation:   p.IsConsolidation,
	})
}

// UnmarshalJSON parses the wire shape described in spec §6, re-sorting the
// parsed edits into canonical order.
func (p *EditPlan) UnmarshalJSON(data []byte) error {
	var w editPlanWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ordered := append([]TextEdit(nil), w.Edits...)
	sortEdits(ordered)
	p.SourceFile = w.SourceFile
	p.edits = ordered
	p.DependencyUpdates = w.DependencyUpdates
	p.Validations = w.Validations
	p.Metadata = w.Metadata
	p.FileChecksums = w.FileChecksums
	p.IsConsolidation = w.IsConsolidation
	return nil
}

// NewEditPlan builds an EditPlan from an unordered edit set, sorting it into
// the plan's canonical total order. Callers populate FileChecksums
// separately (see checksum.Compute) since that requires reading file
// contents the planner does not always have in hand at construction time.
func NewEditPlan(sourceFile string, edits []TextEdit) *EditPlan {
	ordered := append([]TextEdit(nil), edits...)
	sortEdits(ordered)
	return &EditPlan{
		SourceFile: sourceFile,
		edits:      ordered,
	}
}

// Edits returns the plan's edits in canonical order. The returned slice
// must not be mutated.
func (p *EditPlan) Edits() []TextEdit { return p.edits }

func sortEdits(edits []TextEdit) {
	// insertion sort: plans are small (dozens of edits), and a stable,
	// allocation-free sort keeps this package free of a sort-package
	// interface-value indirection for a hot path called once per plan.
	for i := 1; i < len(edits); i++ {
		j := i
		for j > 0 && editLess(edits[j], edits[j-1]) {
			edits[j], edits[j-1] = edits[j-1], edits[j]
			j--
		}
	}
}

func editLess(a, b TextEdit) bool {
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority // higher priority first
	}
	return a.Location.Before(b.Location)
}

// Validate checks the plan's non-overlap invariant for edits sharing a
// FilePath. It does not re-derive FileChecksums or touch disk.
func (p *EditPlan) Validate() error {
	byFile := make(map[string][]TextEdit)
	for _, e := range p.edits {
		byFile[e.FilePath] = append(byFile[e.FilePath], e)
	}
	for file, edits := range byFile {
		for i := range edits {
			for j := i + 1; j < len(edits); j++ {
				if edits[i].Location.Overlaps(edits[j].Location) {
					return &OverlapError{File: file, First: edits[i].Location, Second: edits[j].Location}
				}
			}
		}
	}
	return nil
}

// RenameSummary counts the files an applied RenamePlan touched.
type RenameSummary struct {
	Affected int `json:"affected"`
	Created  int `json:"created"`
	Deleted  int `json:"deleted"`
}

// RenameMetadata carries planner-reported context about a RenamePlan.
type RenameMetadata struct {
	Language       string    `json:"language"`
	EstimatedImpact int      `json:"estimated_impact"`
	CreatedAt      time.Time `json:"created_at"`
}

// RenamePlan is an EditPlan reshaped into an LSP-style WorkspaceEdit,
// annotated with the summary and warnings a rename operation accumulates
// while walking the import graph.
type RenamePlan struct {
	Changes       map[string][]TextEdit `json:"changes"`
	Summary       RenameSummary         `json:"summary"`
	Warnings      []string              `json:"warnings,omitempty"`
	Metadata      RenameMetadata        `json:"metadata"`
	FileChecksums map[string]string     `json:"file_checksums,omitempty"`
}

// FromEditPlan groups an EditPlan's edits by file into a RenamePlan's
// WorkspaceEdit-shaped Changes map. Summary and Warnings are left for the
// caller (the planner's rename step) to fill in, since only it knows which
// files were newly created or deleted versus merely edited.
func FromEditPlan(p *EditPlan, language string) *RenamePlan {
	changes := make(map[string][]TextEdit)
	for _, e := range p.Edits() {
		changes[e.FilePath] = append(changes[e.FilePath], e)
	}
	return &RenamePlan{
		Changes:       changes,
		FileChecksums: p.FileChecksums,
		Metadata: RenameMetadata{
			Language: language,
		},
	}
}

// ImportType distinguishes the syntactic form of an import statement.
type ImportType string

const (
	ImportEsModule ImportType = "es_module"
	ImportCommonJs ImportType = "commonjs"
	ImportDynamic  ImportType = "dynamic"
	ImportTypeOnly ImportType = "type_only"
)

// NamedImport is one `{ name [as alias] }` binding within an import
// statement.
type NamedImport struct {
	Name     string `json:"name"`
	Alias    string `json:"alias,omitempty"`
	TypeOnly bool   `json:"type_only,omitempty"`
}

// ImportInfo describes a single import statement as parsed by a language
// adapter.
type ImportInfo struct {
	ModulePath      string         `json:"module_path"`
	ImportType      ImportType     `json:"import_type"`
	NamedImports    []NamedImport  `json:"named_imports,omitempty"`
	DefaultImport   string         `json:"default_import,omitempty"`
	NamespaceImport string         `json:"namespace_import,omitempty"`
	TypeOnly        bool           `json:"type_only,omitempty"`
	Location        SourceLocation `json:"location"`
}

// ImportGraphMetadata summarizes the shape of an ImportGraph: which module
// paths resolve outside the workspace, and which files participate in an
// import cycle.
type ImportGraphMetadata struct {
	Language             string   `json:"language"`
	ExternalDependencies  []string `json:"external_dependencies,omitempty"`
	CircularDependencies  [][]string `json:"circular_dependencies,omitempty"`
}

// ImportGraph is rooted at one source file. Imports holds the file's own
// import statements; Importers (populated by the resolver, not the parser)
// holds the files that import it.
type ImportGraph struct {
	SourceFile string              `json:"source_file"`
	Imports    []ImportInfo        `json:"imports"`
	Importers  []string            `json:"importers,omitempty"`
	Metadata   ImportGraphMetadata `json:"metadata"`
}

// ReferenceKind distinguishes the syntactic context a ModuleReference was
// found in.
type ReferenceKind string

const (
	RefDeclaration   ReferenceKind = "declaration"
	RefQualifiedPath ReferenceKind = "qualified_path"
	RefStringLiteral ReferenceKind = "string_literal"
)

// ModuleReference is one occurrence of a module name within a file, found
// while searching for references to rewrite or report.
type ModuleReference struct {
	Line   int           `json:"line"`
	Column int           `json:"column"`
	Length int           `json:"length"`
	Text   string        `json:"text"`
	Kind   ReferenceKind `json:"kind"`
}

// ScanScope widens what a module-reference search counts as a reference:
// each step includes everything the previous one does, plus one more kind
// of occurrence.
type ScanScope string

const (
	// ScopeTopLevelOnly matches only top-level import/use statements.
	ScopeTopLevelOnly ScanScope = "top_level_only"
	// ScopeAllUseStatements additionally matches nested imports (inside
	// functions, classes, conditional blocks).
	ScopeAllUseStatements ScanScope = "all_use_statements"
	// ScopeQualifiedPaths additionally matches qualified-path usages
	// (selector expressions, namespaced calls) outside of import
	// statements.
	ScopeQualifiedPaths ScanScope = "qualified_paths"
	// ScopeAll additionally matches string-literal occurrences of the
	// module name.
	ScopeAll ScanScope = "all"
)
