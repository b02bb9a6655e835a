// Package check verifies that committed declaration files match what the
// generator produces from the current inputs.
package check

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/teranos/domgen/errors"
)

// Difference describes one stale output file
type Difference struct {
	File string
	// Missing is set when the committed file does not exist
	Missing bool
	// Diff is a line diff from the committed file to the regenerated one
	Diff string
}

// Result holds the result of a check
type Result struct {
	UpToDate    bool
	Differences []Difference
}

// Files lists the stale file names
func (r *Result) Files() []string {
	out := make([]string, len(r.Differences))
	for i, d := range r.Differences {
		out[i] = d.File
	}
	return out
}

// CompareDirectories compares every file of generatedDir with the file of the
// same relative path in existingDir. Files only present in existingDir are
// ignored.
func CompareDirectories(generatedDir, existingDir string) (*Result, error) {
	var diffs []Difference
	err := filepath.Walk(generatedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}
		d, err := CompareFiles(path, filepath.Join(existingDir, rel))
		if err != nil {
			return err
		}
		if d != nil {
			d.File = rel
			diffs = append(diffs, *d)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compare %s with %s", generatedDir, existingDir)
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].File < diffs[j].File })
	return &Result{UpToDate: len(diffs) == 0, Differences: diffs}, nil
}

// CompareFiles compares a regenerated file with a committed one byte for
// byte. It returns nil when they are identical.
func CompareFiles(generated, existing string) (*Difference, error) {
	want, err := os.ReadFile(generated)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", generated)
	}
	got, err := os.ReadFile(existing)
	if os.IsNotExist(err) {
		return &Difference{File: existing, Missing: true}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", existing)
	}
	if bytes.Equal(want, got) {
		return nil, nil
	}
	return &Difference{File: existing, Diff: LineDiff(string(got), string(want))}, nil
}

// LineDiff renders the changed lines from oldText to newText, prefixed with "-" and "+"
func LineDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return sb.String()
}
