package patch

import (
	"fmt"
	"os"
	"path/filepath"

	"code-auditor/internal/diff"
)

// Stats summarizes one tree application for callers that report on it.
type Stats struct {
	Created      int
	Modified     int
	Deleted      int
	SkippedHunks int
}

// ApplyToTree applies a unified diff to the working tree under root. Created
// and modified files are written in place, deleted files removed, and parent
// directories created as needed. A modify record whose file is missing from
// the tree is skipped rather than treated as a create.
func ApplyToTree(root, patchText string) (Stats, error) {
	var stats Stats

	for _, change := range diff.Parse(patchText) {
		full := filepath.Join(root, filepath.FromSlash(change.Path))

		switch change.Kind() {
		case diff.Delete:
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return stats, fmt.Errorf("remove %s: %w", change.Path, err)
			}
			stats.Deleted++

		case diff.Create:
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return stats, fmt.Errorf("mkdir for %s: %w", change.Path, err)
			}
			if err := os.WriteFile(full, []byte(change.CreatedContent), 0o644); err != nil {
				return stats, fmt.Errorf("write %s: %w", change.Path, err)
			}
			stats.Created++

		case diff.Modify:
			b, err := os.ReadFile(full)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return stats, fmt.Errorf("read %s: %w", change.Path, err)
			}

			res := ApplyToContent(string(b), change)
			if err := os.WriteFile(full, []byte(res.Content), 0o644); err != nil {
				return stats, fmt.Errorf("write %s: %w", change.Path, err)
			}
			stats.Modified++
			stats.SkippedHunks += res.SkippedHunks
		}
	}

	return stats, nil
}
