// Package checksum computes and verifies the SHA-256 file_checksums a plan
// carries as its optimistic-concurrency precondition: every file a
// non-Insert edit targets is hashed when the plan is built, and the
// executor re-hashes immediately before applying edits to abort on drift.
package checksum
