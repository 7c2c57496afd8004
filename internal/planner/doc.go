// Package planner implements the refactor intents spec.md's Refactor
// Planner (C7) exposes: one entry point per intent, each returning a plan
// without mutating any file. Every entry point reads files directly (to
// compute checksums and build edits) but never writes one — applying an
// EditPlan is the executor's job, not the planner's.
//
// Rename and extract-module lean on internal/lang's per-language adapters
// for import rewriting and manifest generation; consolidation detection
// (moving a package into another package's source tree) is grounded on
// rustadapter's Cargo-workspace helpers, generalized across the adapter set
// via lang.Adapter.ManifestFilename.
package planner
