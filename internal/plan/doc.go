// Package plan defines the shared data model for refactor plans: the edits a
// planner proposes, the checksums that guard them, and the import/module
// metadata the planner and import graph exchange.
//
// Values in this package are pure: once built by the planner they are never
// mutated in place. An EditPlan is either applied by an executor against a
// checksum precondition or discarded; it carries everything a later stage
// (checksum validation, dispatcher serialization) needs without referring
// back to the planner that built it.
package plan
