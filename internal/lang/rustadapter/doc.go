// Package rustadapter implements lang.Adapter for Rust/Cargo, plus the
// Cargo-specific consolidation-rename helpers the planner's directory-move
// step needs.
//
// ExtractCargoRenameInfo and ExtractConsolidationRenameInfo are grounded on
// original_source's extract_cargo_rename_info and
// extract_consolidation_rename_info (languages/mill-lang-rust's
// cargo_util.rs): given an old and new package path, they derive the
// snake_case crate names and, for consolidation moves, the new
// `target_crate::submodule` import prefix — the exact fields the rename
// planner's import-rewrite pass needs that spec.md names but does not
// itself define.
package rustadapter
