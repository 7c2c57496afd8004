package rustadapter

import (
	"os"
	"path/filepath"
	"strings"
)

// RustConsolidationInfo carries the fields the planner's rename step needs
// when a Rust module is consolidated into another crate: the crate the
// code used to belong to, the crate it now belongs to, and the import
// prefix every reference to the old crate must be rewritten to use.
type RustConsolidationInfo struct {
	OldCrateName    string
	NewCrateName    string
	NewImportPrefix string
	SubmoduleName   string
	TargetCrateName string
}

// IsCargoPackage reports whether dir contains a Cargo.toml with a
// [package] section (as opposed to a workspace-only manifest).
func IsCargoPackage(dir string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return strings.Contains(string(content), "[package]"), nil
}

func extractPackageName(content string) (string, error) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "name") && strings.Contains(trimmed, "=") {
			parts := strings.SplitN(trimmed, "=", 2)
			if len(parts) != 2 {
				continue
			}
			name := strings.TrimSpace(parts[1])
			name = strings.Trim(name, `"'`)
			return name, nil
		}
	}
	return "", ErrNoPackageName
}

// ExtractCargoRenameInfo reads oldDir's Cargo.toml to find the package's
// current name, infers the new package name from newDir's directory name,
// and returns both in crate-name (snake_case) form.
func ExtractCargoRenameInfo(oldDir, newDir string) (oldCrateName, newCrateName string, err error) {
	content, err := os.ReadFile(filepath.Join(oldDir, "Cargo.toml"))
	if err != nil {
		return "", "", err
	}
	oldPackageName, err := extractPackageName(string(content))
	if err != nil {
		return "", "", err
	}
	newPackageName := filepath.Base(newDir)

	return crateName(oldPackageName), crateName(newPackageName), nil
}

// ExtractConsolidationRenameInfo walks up from newPackagePath looking for
// the nearest enclosing Cargo.toml with a [package] section — the crate
// the code is being consolidated into — and derives the new
// `target_crate::submodule` import prefix every reference to the old
// crate must be rewritten to.
func ExtractConsolidationRenameInfo(oldPackagePath, newPackagePath string) (*RustConsolidationInfo, error) {
	oldContent, err := os.ReadFile(filepath.Join(oldPackagePath, "Cargo.toml"))
	if err != nil {
		return nil, err
	}
	oldPackageName, err := extractPackageName(string(oldContent))
	if err != nil {
		return nil, err
	}
	oldCrateName := crateName(oldPackageName)

	targetCrateName := ""
	current := newPackagePath
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent

		manifest := filepath.Join(current, "Cargo.toml")
		content, readErr := os.ReadFile(manifest)
		if readErr != nil {
			continue
		}
		if !strings.Contains(string(content), "[package]") {
			continue
		}
		if name, nameErr := extractPackageName(string(content)); nameErr == nil {
			targetCrateName = crateName(name)
			break
		}
	}
	if targetCrateName == "" {
		return nil, ErrTargetCrateNotFound
	}

	submoduleName := filepath.Base(newPackagePath)
	newImportPrefix := targetCrateName + "::" + submoduleName

	return &RustConsolidationInfo{
		OldCrateName:    oldCrateName,
		NewCrateName:    newImportPrefix,
		NewImportPrefix: newImportPrefix,
		SubmoduleName:   submoduleName,
		TargetCrateName: targetCrateName,
	}, nil
}

func crateName(packageName string) string {
	return strings.ReplaceAll(packageName, "-", "_")
}
