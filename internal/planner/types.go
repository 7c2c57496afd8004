package planner

import (
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/plan"
)

// RenameScope limits which kinds of references a rename updates.
type RenameScope string

const (
	ScopeCode       RenameScope = "code"
	ScopeStandard   RenameScope = "standard"
	ScopeComments   RenameScope = "comments"
	ScopeEverything RenameScope = "everything"
)

// scanScope maps a rename Scope onto the ScanScope an adapter's
// FindModuleReferences call widens or narrows by.
func (s RenameScope) scanScope() plan.ScanScope {
	switch s {
	case ScopeCode:
		return plan.ScopeTopLevelOnly
	case ScopeStandard:
		return plan.ScopeQualifiedPaths
	case ScopeComments, ScopeEverything:
		return plan.ScopeAll
	default:
		return plan.ScopeTopLevelOnly
	}
}

// NamingConvention identifies a file base-name casing style for
// ConvertNamingConvention.
type NamingConvention string

const (
	ConventionSnakeCase  NamingConvention = "snake_case"
	ConventionCamelCase  NamingConvention = "camelCase"
	ConventionPascalCase NamingConvention = "PascalCase"
	ConventionKebabCase  NamingConvention = "kebab-case"
)

// Planner builds refactor plans. It holds no mutable state beyond the
// adapter registry it consults; every method is safe to call concurrently.
type Planner struct {
	registry *lang.Registry
}

// New creates a Planner backed by registry.
func New(registry *lang.Registry) *Planner {
	return &Planner{registry: registry}
}

func newMetadata(intent string, args any) plan.EditPlanMetadata {
	return plan.EditPlanMetadata{
		IntentName: intent,
		IntentArgs: args,
	}
}

// planPriority constants, matching spec.md's §4.7 priority ordering for
// extract-module-to-package; reused wherever other intents need a similar
// "structural change before reference rewrite" ordering.
const (
	PriorityCreateManifest  = 100
	PriorityCreateEntry     = 90
	PriorityDeleteOld       = 80
	PriorityRemoveModDecl   = 70
	PriorityAddDependency   = 60
	PriorityAddWorkspaceDep = 50
	PriorityRewriteImports  = 40
	PriorityFileMove        = 100
	PriorityImportRewrite   = 40
)
