package diff

import "strings"

const (
	oldMarkerPrefix = "--- "
	newMarkerPrefix = "+++ "
	hunkPrefix      = "@@"
)

// Parse converts unified-diff text into ordered per-file change records.
//
// The scan is deliberately permissive: lines that do not look like a file
// header, hunk header, or hunk body are ignored, and a dangling origin marker
// without its +++ partner is discarded. Imperfect AI-generated diffs should
// degrade to a best-effort result, never an error.
func Parse(patch string) []FileChange {
	lines := strings.Split(patch, "\n")

	var changes []FileChange
	var current FileChange
	open := false

	flush := func() {
		if open {
			changes = append(changes, current)
			open = false
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.HasPrefix(line, oldMarkerPrefix) {
			flush()

			oldMarker := strings.TrimSpace(line[len(oldMarkerPrefix):])
			if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], newMarkerPrefix) {
				continue
			}
			i++
			newMarker := strings.TrimSpace(lines[i][len(newMarkerPrefix):])

			current = FileChange{
				Path:         extractPath(oldMarker, newMarker),
				OldMarker:    oldMarker,
				NewMarker:    newMarker,
				OriginTagged: oldMarker == DevNull || strings.HasPrefix(oldMarker, "a/"),
			}
			open = true
			continue
		}

		if !open {
			continue
		}

		if strings.HasPrefix(line, hunkPrefix) {
			current.Hunks = append(current.Hunks, Hunk{Header: line})
			continue
		}

		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			if current.Kind() == Create {
				current.CreatedContent += line[1:] + "\n"
			} else if n := len(current.Hunks); n > 0 {
				current.Hunks[n-1].Ops = append(current.Hunks[n-1].Ops, Op{Type: OpAdd, Text: line[1:]})
			}

		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			if n := len(current.Hunks); n > 0 {
				current.Hunks[n-1].Ops = append(current.Hunks[n-1].Ops, Op{Type: OpDelete, Text: line[1:]})
			}

		case strings.HasPrefix(line, " "):
			if n := len(current.Hunks); n > 0 {
				current.Hunks[n-1].Ops = append(current.Hunks[n-1].Ops, Op{Type: OpContext, Text: line[1:]})
			}
		}
	}

	flush()

	return changes
}

func extractPath(oldMarker, newMarker string) string {
	if strings.HasPrefix(newMarker, "b/") {
		return newMarker[2:]
	}
	if strings.HasPrefix(oldMarker, "a/") {
		return oldMarker[2:]
	}
	return newMarker
}
