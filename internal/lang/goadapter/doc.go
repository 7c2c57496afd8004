// Package goadapter implements lang.Adapter for Go source files.
//
// Import parsing is regex/line-scanner based, grounded on the project
// package's graph.GoParser (extractGoPackage/extractGoImports): Go's import
// block is simple enough — one `import (...)` block or single `import
// "path"` statements — that a full parser is unnecessary for the
// planner's needs. Qualified references (selector expressions like
// pkg.Symbol) are matched the same way.
package goadapter
