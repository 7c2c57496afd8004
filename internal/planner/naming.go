package planner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dshills/refactorengine/internal/plan"
)

var wordBoundary = regexp.MustCompile(`[A-Z]+[a-z0-9]*|[a-z0-9]+|[A-Z]+$`)

func splitWords(name string) []string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	var words []string
	for _, field := range strings.Fields(replaced) {
		words = append(words, wordBoundary.FindAllString(field, -1)...)
	}
	return words
}

func convertCase(name string, to NamingConvention) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	switch to {
	case ConventionSnakeCase:
		return strings.Join(words, "_")
	case ConventionKebabCase:
		return strings.Join(words, "-")
	case ConventionCamelCase:
		return joinCapitalized(words, false)
	case ConventionPascalCase:
		return joinCapitalized(words, true)
	default:
		return name
	}
}

func joinCapitalized(words []string, capitalizeFirst bool) string {
	var b strings.Builder
	for i, w := range words {
		if i == 0 && !capitalizeFirst {
			b.WriteString(w)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	return b.String()
}

// ConvertNamingConvention bulk-renames every file in allFiles whose base
// name matches glob (root is not consulted) from its current base-name
// convention to target, skipping files whose
// name is already unchanged. Each rename is planned via RenameFile so
// importers get rewritten the same way a single rename would.
func (p *Planner) ConvertNamingConvention(ctx context.Context, root, glob string, target NamingConvention, allFiles []string) ([]*plan.RenamePlan, error) {
	var plans []*plan.RenamePlan
	for _, file := range allFiles {
		matched, err := filepath.Match(glob, filepath.Base(file))
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		ext := filepath.Ext(file)
		base := strings.TrimSuffix(filepath.Base(file), ext)
		converted := convertCase(base, target)
		if converted == base {
			continue
		}
		newPath := filepath.Join(filepath.Dir(file), converted+ext)
		rp, err := p.RenameFile(ctx, file, newPath, ScopeCode, allFiles)
		if err != nil {
			return nil, err
		}
		plans = append(plans, rp)
	}
	return plans, nil
}
