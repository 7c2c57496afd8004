package plan

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewEditPlanOrdersEdits(t *testing.T) {
	edits := []TextEdit{
		{EditType: EditReplace, FilePath: "b.go", Location: SourceLocation{StartLine: 1}, Priority: 0},
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 5}, Priority: 0},
		{EditType: EditInsert, FilePath: "a.go", Location: SourceLocation{StartLine: 1}, Priority: 10},
		{EditType: EditInsert, FilePath: "a.go", Location: SourceLocation{StartLine: 1}, Priority: 1},
	}

	p := NewEditPlan("a.go", edits)
	got := p.Edits()

	if len(got) != 4 {
		t.Fatalf("expected 4 edits, got %d", len(got))
	}
	if got[0].FilePath != "a.go" || got[0].Priority != 10 {
		t.Errorf("expected highest-priority a.go edit first, got %+v", got[0])
	}
	if got[1].FilePath != "a.go" || got[1].Priority != 1 {
		t.Errorf("expected second-priority a.go edit second, got %+v", got[1])
	}
	if got[3].FilePath != "b.go" {
		t.Errorf("expected b.go edit last, got %+v", got[3])
	}
}

func TestEditPlanValidateDetectsOverlap(t *testing.T) {
	edits := []TextEdit{
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 10}},
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 1, StartColumn: 5, EndLine: 1, EndColumn: 15}},
	}
	p := NewEditPlan("a.go", edits)

	var overlapErr *OverlapError
	err := p.Validate()
	if err == nil {
		t.Fatal("expected overlap error, got nil")
	}
	if !asOverlapError(err, &overlapErr) {
		t.Fatalf("expected *OverlapError, got %T", err)
	}
}

func asOverlapError(err error, target **OverlapError) bool {
	oe, ok := err.(*OverlapError)
	if ok {
		*target = oe
	}
	return ok
}

func TestEditPlanValidateAllowsDisjointEdits(t *testing.T) {
	edits := []TextEdit{
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 5}},
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 2, StartColumn: 0, EndLine: 2, EndColumn: 5}},
	}
	p := NewEditPlan("a.go", edits)
	if err := p.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestEditPlanJSONRoundTrip(t *testing.T) {
	edits := []TextEdit{
		{EditType: EditInsert, FilePath: "a.go", Location: SourceLocation{StartLine: 1}, NewText: "x", Priority: 1, Description: "insert x"},
	}
	p := NewEditPlan("a.go", edits)
	p.Metadata = EditPlanMetadata{IntentName: "rename", Complexity: 2}
	p.FileChecksums = map[string]string{"a.go": "deadbeef"}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map: %v", err)
	}
	if _, ok := raw["edits"]; !ok {
		t.Fatal("expected wire output to carry an \"edits\" key")
	}

	var round EditPlan
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal to EditPlan: %v", err)
	}
	if diff := cmp.Diff(p.Edits(), round.Edits()); diff != "" {
		t.Errorf("edits mismatch after round-trip (-want +got):\n%s", diff)
	}
	if round.Metadata.IntentName != "rename" {
		t.Errorf("expected intent_name to round-trip, got %q", round.Metadata.IntentName)
	}
}

func TestFromEditPlanGroupsByFile(t *testing.T) {
	edits := []TextEdit{
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 1}},
		{EditType: EditReplace, FilePath: "b.go", Location: SourceLocation{StartLine: 1}},
		{EditType: EditReplace, FilePath: "a.go", Location: SourceLocation{StartLine: 2}},
	}
	p := NewEditPlan("a.go", edits)
	rp := FromEditPlan(p, "go")

	if len(rp.Changes["a.go"]) != 2 {
		t.Errorf("expected 2 changes for a.go, got %d", len(rp.Changes["a.go"]))
	}
	if len(rp.Changes["b.go"]) != 1 {
		t.Errorf("expected 1 change for b.go, got %d", len(rp.Changes["b.go"]))
	}
	if rp.Metadata.Language != "go" {
		t.Errorf("expected language go, got %q", rp.Metadata.Language)
	}
}

func TestSourceLocationOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b SourceLocation
		want bool
	}{
		{
			name: "disjoint same line",
			a:    SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 5},
			b:    SourceLocation{StartLine: 1, StartColumn: 5, EndLine: 1, EndColumn: 10},
			want: false,
		},
		{
			name: "overlapping same line",
			a:    SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 6},
			b:    SourceLocation{StartLine: 1, StartColumn: 5, EndLine: 1, EndColumn: 10},
			want: true,
		},
		{
			name: "disjoint different lines",
			a:    SourceLocation{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 10},
			b:    SourceLocation{StartLine: 2, StartColumn: 0, EndLine: 2, EndColumn: 10},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
