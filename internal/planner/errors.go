package planner

import "errors"

var (
	// ErrNoAdapter indicates no registered language adapter handles a file.
	ErrNoAdapter = errors.New("planner: no language adapter for file")
	// ErrNotExtractable indicates a selection fails an extract intent's
	// safety checks (e.g. spans a declaration or multiple statements).
	ErrNotExtractable = errors.New("planner: selection is not extractable")
	// ErrUnsafeInline indicates an inline-variable target is reassigned or
	// redeclared on a line other than its declaration.
	ErrUnsafeInline = errors.New("planner: variable is not safe to inline")
	// ErrSymbolNotFound indicates the declaration or usage a planner
	// intent was asked to operate on could not be located.
	ErrSymbolNotFound = errors.New("planner: symbol not found")
)
