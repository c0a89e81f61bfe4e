package patch

import (
	"fmt"
	"strings"
	"testing"

	"code-auditor/internal/diff"
)

func modify(path string, hunks ...diff.Hunk) diff.FileChange {
	return diff.FileChange{
		Path:      path,
		OldMarker: "a/" + path,
		NewMarker: "b/" + path,
		Hunks:     hunks,
	}
}

func TestApplyToContent_ZeroHunksIsIdentity(t *testing.T) {
	original := "a\nb\nc\n"

	res := ApplyToContent(original, modify("f.txt"))
	if res.Content != original {
		t.Fatalf("expected identity, got %q", res.Content)
	}
	if res.Deleted {
		t.Fatalf("modify must not signal deletion")
	}
}

func TestApplyToContent_CreateUsesAccumulatedContent(t *testing.T) {
	change := diff.FileChange{
		Path:           "new.txt",
		OldMarker:      diff.DevNull,
		NewMarker:      "b/new.txt",
		CreatedContent: "x\ny\n",
	}

	res := ApplyToContent("", change)
	if res.Content != "x\ny\n" {
		t.Fatalf("expected created content, got %q", res.Content)
	}
}

func TestApplyToContent_DeleteSignalsRemoval(t *testing.T) {
	change := diff.FileChange{
		Path:      "gone.txt",
		OldMarker: "a/gone.txt",
		NewMarker: diff.DevNull,
		Hunks: []diff.Hunk{
			{Header: "@@ -1,2 +0,0 @@", Ops: []diff.Op{{Type: diff.OpDelete, Text: "a"}}},
		},
	}

	res := ApplyToContent("a\nb", change)
	if !res.Deleted {
		t.Fatalf("expected deletion signal")
	}
	if res.Content != "" {
		t.Fatalf("delete must not compute content, got %q", res.Content)
	}
}

func TestApplyToContent_SingleInPlaceEdit(t *testing.T) {
	change := modify("f.txt", diff.Hunk{
		Header: "@@ -2,1 +2,1 @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: "b"},
			{Type: diff.OpAdd, Text: "B"},
		},
	})

	res := ApplyToContent("a\nb\nc", change)
	if res.Content != "a\nB\nc" {
		t.Fatalf("expected line 2 replaced, got %q", res.Content)
	}

	// A trailing newline survives as the empty final segment.
	res = ApplyToContent("a\nb\nc\n", change)
	if res.Content != "a\nB\nc\n" {
		t.Fatalf("expected trailing newline preserved, got %q", res.Content)
	}
}

func TestApplyToContent_ContextCopiesByIndex(t *testing.T) {
	change := modify("f.txt", diff.Hunk{
		Header: "@@ -1,3 +1,3 @@",
		Ops: []diff.Op{
			{Type: diff.OpContext, Text: "does-not-match"},
			{Type: diff.OpDelete, Text: "b"},
			{Type: diff.OpAdd, Text: "B"},
			{Type: diff.OpContext, Text: "c"},
		},
	})

	// Context is trusted, not verified: the original line wins.
	res := ApplyToContent("a\nb\nc", change)
	if res.Content != "a\nB\nc" {
		t.Fatalf("expected index-based context copy, got %q", res.Content)
	}
}

func TestApplyToContent_HunksApplyInOrder(t *testing.T) {
	original := "l1\nl2\nl3\nl4\nl5"

	first := diff.Hunk{
		Header: "@@ -1,1 +1,1 @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: "l1"},
			{Type: diff.OpAdd, Text: "A"},
		},
	}
	second := diff.Hunk{
		Header: "@@ -3,1 +3,1 @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: "l3"},
			{Type: diff.OpAdd, Text: "B"},
		},
	}

	inOrder := ApplyToContent(original, modify("f.txt", first, second))
	if inOrder.Content != "A\nl2\nB\nl4\nl5" {
		t.Fatalf("unexpected in-order result %q", inOrder.Content)
	}

	// Reversed hunks consume the cursor differently; the replay is
	// order-sensitive by design.
	reversed := ApplyToContent(original, modify("f.txt", second, first))
	if reversed.Content == inOrder.Content {
		t.Fatalf("expected reversed hunk order to change the result")
	}
}

func TestApplyToContent_MalformedHeaderSkipsHunk(t *testing.T) {
	original := "a\nb\nc"

	change := modify("f.txt", diff.Hunk{
		Header: "@@ not a real header @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: "a"},
			{Type: diff.OpAdd, Text: "X"},
		},
	})

	res := ApplyToContent(original, change)
	if res.Content != original {
		t.Fatalf("malformed hunk must leave content untouched, got %q", res.Content)
	}
	if res.SkippedHunks != 1 {
		t.Fatalf("expected one skipped hunk, got %d", res.SkippedHunks)
	}
}

func TestApplyToContent_GapAndTailPreserved(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i+1)
	}
	original := strings.Join(lines, "\n")

	change := modify("f.txt", diff.Hunk{
		Header: "@@ -8,1 +8,1 @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: lines[7]},
			{Type: diff.OpAdd, Text: "EDIT"},
		},
	})

	res := ApplyToContent(original, change)
	got := strings.Split(res.Content, "\n")

	for i := 0; i < 7; i++ {
		if got[i] != lines[i] {
			t.Fatalf("line %d not preserved: %q", i+1, got[i])
		}
	}
	if got[7] != "EDIT" {
		t.Fatalf("expected edit at line 8, got %q", got[7])
	}
	if got[8] != lines[8] || got[9] != lines[9] {
		t.Fatalf("tail not preserved: %v", got[8:])
	}
}

func TestApplyToContent_HunkCountOmitted(t *testing.T) {
	change := modify("f.txt", diff.Hunk{
		Header: "@@ -2 +2 @@",
		Ops: []diff.Op{
			{Type: diff.OpDelete, Text: "b"},
			{Type: diff.OpAdd, Text: "B"},
		},
	})

	res := ApplyToContent("a\nb\nc", change)
	if res.Content != "a\nB\nc" {
		t.Fatalf("expected omitted count to imply one line, got %q", res.Content)
	}
}

func TestApplySet_RecordsReadIndependentOriginals(t *testing.T) {
	store := map[string]string{
		"one.go": "a\nb",
		"two.go": "x\ny",
	}

	patchText := "--- a/one.go\n" +
		"+++ b/one.go\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-a\n" +
		"+A\n" +
		"--- a/two.go\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-x\n" +
		"-y\n" +
		"--- /dev/null\n" +
		"+++ b/three.go\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+z\n"

	results := ApplySet(patchText, func(path string) (string, bool) {
		c, ok := store[path]
		return c, ok
	})

	if len(results) != 3 {
		t.Fatalf("expected three results, got %d", len(results))
	}
	if results[0].Content != "A\nb" {
		t.Fatalf("unexpected modify result %q", results[0].Content)
	}
	if !results[1].Deleted {
		t.Fatalf("expected deletion for two.go")
	}
	if results[2].Content != "z\n" {
		t.Fatalf("unexpected create result %q", results[2].Content)
	}
}
