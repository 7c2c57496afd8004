package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/dshills/refactorengine/internal/plan"
)

// File hashes path's current contents with SHA-256 and returns the lowercase
// hex digest.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// targetFiles returns the set of files edits touch via a non-Insert edit:
// these are the files whose pre-edit content the plan's checksums guard.
func targetFiles(edits []plan.TextEdit) []string {
	seen := make(map[string]bool)
	var files []string
	for _, e := range edits {
		if e.EditType == plan.EditInsert || e.FilePath == "" {
			continue
		}
		if !seen[e.FilePath] {
			seen[e.FilePath] = true
			files = append(files, e.FilePath)
		}
	}
	return files
}

// Compute hashes every file that edits modifies via a Delete or Replace
// edit and currently exists on disk, returning a file_checksums map ready
// to attach to an EditPlan. A file named by an edit but absent on disk
// (e.g. already deleted out of band) is silently omitted, matching
// spec.md's "currently exists" qualifier.
func Compute(edits []plan.TextEdit) (map[string]string, error) {
	sums := make(map[string]string)
	for _, file := range targetFiles(edits) {
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		sum, err := File(file)
		if err != nil {
			return nil, err
		}
		sums[file] = sum
	}
	return sums, nil
}

// Verify re-hashes every file named in want and reports the first mismatch
// or missing file as a *MismatchError. A nil return means every checksum
// still matches and the plan is safe to apply.
func Verify(want map[string]string) error {
	for file, expected := range want {
		actual, err := File(file)
		if err != nil {
			return &MismatchError{File: file, Reason: err.Error()}
		}
		if actual != expected {
			return &MismatchError{File: file, Expected: expected, Actual: actual}
		}
	}
	return nil
}
