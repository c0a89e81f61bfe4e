package fixer

import (
	"fmt"
	"strings"
)

// BuildFileDiff emits a unified diff turning original into fixed, as a single
// minimal hunk with no context lines. Returns "" when the contents are equal.
func BuildFileDiff(path, original, fixed string) string {
	if original == fixed {
		return ""
	}

	oldLines := strings.Split(original, "\n")
	newLines := strings.Split(fixed, "\n")

	// Trim the common prefix and suffix so the hunk covers only the change.
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	oldMid := oldLines[prefix : len(oldLines)-suffix]
	newMid := newLines[prefix : len(newLines)-suffix]

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", prefix+1, len(oldMid), prefix+1, len(newMid))
	for _, l := range oldMid {
		b.WriteString("-" + l + "\n")
	}
	for _, l := range newMid {
		b.WriteString("+" + l + "\n")
	}

	return b.String()
}

// BuildCreateDiff emits a unified diff that creates path with the given
// content.
func BuildCreateDiff(path, content string) string {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "--- /dev/null\n")
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(lines))
	for _, l := range lines {
		b.WriteString("+" + l + "\n")
	}

	return b.String()
}
