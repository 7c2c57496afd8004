package rustadapter

import "errors"

var (
	// ErrNoPackageName is returned when a Cargo.toml has no name field
	// under [package].
	ErrNoPackageName = errors.New("rustadapter: could not find package name in Cargo.toml")
	// ErrTargetCrateNotFound is returned when no enclosing Cargo.toml
	// with a [package] section is found while walking up from a
	// consolidation target path.
	ErrTargetCrateNotFound = errors.New("rustadapter: could not find target crate Cargo.toml")
	// ErrMemberNotFound is returned when a workspace members edit
	// targets a path that is not actually a member.
	ErrMemberNotFound = errors.New("rustadapter: workspace member not found")
	// ErrDependencyNotFound is returned when a path-dependency edit
	// targets a dependency name not present in the manifest.
	ErrDependencyNotFound = errors.New("rustadapter: dependency not found")
)
