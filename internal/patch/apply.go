package patch

import (
	"regexp"
	"strconv"
	"strings"

	"code-auditor/internal/diff"
)

var hunkHeaderRe = regexp.MustCompile(`@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@`)

// Result is the outcome of applying one change record.
type Result struct {
	Path    string
	Content string
	Deleted bool

	// SkippedHunks counts hunks dropped because their header did not parse.
	SkippedHunks int
}

// ApplyToContent replays a change record against the original file content.
//
// Replay is a best-effort "trust the diff" pass: hunks are anchored by the
// original line number in their header, context lines are copied by index
// without checking they match, and a hunk whose header does not parse is
// dropped while the surrounding content stays intact. Hunks must run in
// order; the cursor state carries between them.
func ApplyToContent(original string, change diff.FileChange) Result {
	switch change.Kind() {
	case diff.Create:
		return Result{Path: change.Path, Content: change.CreatedContent}
	case diff.Delete:
		return Result{Path: change.Path, Deleted: true}
	}

	lines := strings.Split(original, "\n")
	result := make([]string, 0, len(lines))
	cursor := 0
	skipped := 0

	for _, hunk := range change.Hunks {
		m := hunkHeaderRe.FindStringSubmatch(hunk.Header)
		if m == nil {
			skipped++
			continue
		}

		oldStart, _ := strconv.Atoi(m[1])
		anchor := oldStart - 1

		// Unchanged region between hunks, preserved by raw index.
		for cursor < anchor && cursor < len(lines) {
			result = append(result, lines[cursor])
			cursor++
		}

		for _, op := range hunk.Ops {
			switch op.Type {
			case diff.OpContext:
				if cursor < len(lines) {
					result = append(result, lines[cursor])
					cursor++
				}
			case diff.OpAdd:
				result = append(result, op.Text)
			case diff.OpDelete:
				cursor++
			}
		}
	}

	for cursor < len(lines) {
		result = append(result, lines[cursor])
		cursor++
	}

	return Result{Path: change.Path, Content: strings.Join(result, "\n"), SkippedHunks: skipped}
}

// Resolver reports the current content of a repository-relative path.
type Resolver func(path string) (content string, ok bool)

// ApplySet parses a unified diff and applies every record through the
// resolver. Records are independent: each reads the pre-patch content of its
// own path, so results come back in record order regardless of overlap.
func ApplySet(patchText string, resolve Resolver) []Result {
	changes := diff.Parse(patchText)

	results := make([]Result, 0, len(changes))
	for _, change := range changes {
		original, _ := resolve(change.Path)
		results = append(results, ApplyToContent(original, change))
	}
	return results
}
