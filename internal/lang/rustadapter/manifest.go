package rustadapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// cargoWorkspace is the subset of Cargo.toml's shape this package reads
// with go-toml/v2 to validate edits — it is never used to re-marshal the
// whole document, since that would lose comments and formatting.
type cargoWorkspace struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// UpdateWorkspaceMember rewrites one entry of a workspace `members = [...]`
// array from oldPath to newPath by string substitution, preserving every
// other byte of the manifest (comments, spacing, key order). The result is
// re-parsed with go-toml/v2 to confirm the edit produced valid TOML before
// it is returned.
func UpdateWorkspaceMember(content, oldPath, newPath string) (string, error) {
	var doc cargoWorkspace
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		return "", fmt.Errorf("rustadapter: parse manifest: %w", err)
	}

	found := false
	for _, m := range doc.Workspace.Members {
		if m == oldPath {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("rustadapter: %w: %q not in workspace members", ErrMemberNotFound, oldPath)
	}

	oldQuoted := `"` + oldPath + `"`
	newQuoted := `"` + newPath + `"`
	rewritten := strings.Replace(content, oldQuoted, newQuoted, 1)

	var verify cargoWorkspace
	if err := toml.Unmarshal([]byte(rewritten), &verify); err != nil {
		return "", fmt.Errorf("rustadapter: rewritten manifest is invalid TOML: %w", err)
	}
	return rewritten, nil
}

// UpdatePathDependency rewrites the `path = "..."` field of a
// `[dependencies]` entry from oldPath to newPath, leaving the rest of the
// dependency table (version, features, optional) untouched.
func UpdatePathDependency(content, depName, oldPath, newPath string) (string, error) {
	lineRegex := regexp.MustCompile(`(?m)^(\s*` + regexp.QuoteMeta(depName) + `\s*=\s*\{[^}]*path\s*=\s*")` + regexp.QuoteMeta(oldPath) + `("[^}]*\})`)
	if !lineRegex.MatchString(content) {
		return "", fmt.Errorf("rustadapter: %w: %q", ErrDependencyNotFound, depName)
	}
	rewritten := lineRegex.ReplaceAllString(content, "${1}"+newPath+"${2}")
	return rewritten, nil
}

// RewriteFeatureString rewrites a Cargo feature-flag string of the form
// "crate-name/feat", "dep:crate-name", or bare "crate-name" to refer to
// newCrateName instead of oldCrateName.
func RewriteFeatureString(feature, oldCrateName, newCrateName string) string {
	switch {
	case strings.HasPrefix(feature, "dep:"):
		rest := strings.TrimPrefix(feature, "dep:")
		if rest == oldCrateName {
			return "dep:" + newCrateName
		}
	case strings.Contains(feature, "/"):
		parts := strings.SplitN(feature, "/", 2)
		if parts[0] == oldCrateName {
			return newCrateName + "/" + parts[1]
		}
	case feature == oldCrateName:
		return newCrateName
	}
	return feature
}
