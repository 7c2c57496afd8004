package analysis

import "github.com/dshills/refactorengine/internal/plan"

// Severity ranks a finding's importance.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Kind names the analysis that produced a Finding.
type Kind string

const (
	KindComplexityCyclomatic Kind = "complexity.cyclomatic"
	KindComplexityCognitive  Kind = "complexity.cognitive"
	KindComplexityNesting    Kind = "complexity.nesting_depth"
	KindComplexityParams     Kind = "complexity.parameter_count"
	KindComplexityLength     Kind = "complexity.function_length"
	KindSmellLongMethod      Kind = "smell.long_method"
	KindSmellGodClass        Kind = "smell.god_class"
	KindSmellMagicNumber     Kind = "smell.magic_number"
	KindSmellDuplicateCode   Kind = "smell.duplicate_code"
	KindDeadCode             Kind = "dead_code"
)

// Finding is one observation from an analysis pass.
type Finding struct {
	Kind        Kind                `json:"kind"`
	Severity    Severity            `json:"severity"`
	Location    plan.SourceLocation `json:"location"`
	Metrics     map[string]float64  `json:"metrics,omitempty"`
	Message     string              `json:"message"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

// AnalysisResult is the output of analyzing one file, or the aggregate of
// analyzing a workspace.
type AnalysisResult struct {
	FilePath string    `json:"file_path,omitempty"`
	Findings []Finding `json:"findings"`
}

// Thresholds gates which metric values produce a Finding. Defaults mirror
// quality.rs's QualityThresholds.
type Thresholds struct {
	CyclomaticComplexity int
	CognitiveComplexity  int
	NestingDepth         int
	ParameterCount       int
	FunctionLength       int
}

// DefaultThresholds returns the threshold set quality.rs uses.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CyclomaticComplexity: 15,
		CognitiveComplexity:  10,
		NestingDepth:         4,
		ParameterCount:       5,
		FunctionLength:       50,
	}
}
