package diff

import "testing"

func TestParse_EmptyInput(t *testing.T) {
	if changes := Parse(""); len(changes) != 0 {
		t.Fatalf("expected no changes, got %d", len(changes))
	}
}

func TestParse_ModifyRecord(t *testing.T) {
	patch := "--- a/pkg/util.go\n" +
		"+++ b/pkg/util.go\n" +
		"@@ -2,1 +2,1 @@\n" +
		" ctx\n" +
		"-old\n" +
		"+new\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}

	c := changes[0]
	if c.Path != "pkg/util.go" {
		t.Fatalf("unexpected path %q", c.Path)
	}
	if c.Kind() != Modify {
		t.Fatalf("expected modify, got %s", c.Kind())
	}
	if !c.OriginTagged {
		t.Fatalf("a/ origin marker should set OriginTagged")
	}
	if len(c.Hunks) != 1 {
		t.Fatalf("expected one hunk, got %d", len(c.Hunks))
	}

	ops := c.Hunks[0].Ops
	want := []Op{
		{Type: OpContext, Text: "ctx"},
		{Type: OpDelete, Text: "old"},
		{Type: OpAdd, Text: "new"},
	}
	if len(ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(ops))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d: expected %+v, got %+v", i, want[i], ops[i])
		}
	}
}

func TestParse_CreateAccumulatesContent(t *testing.T) {
	patch := "--- /dev/null\n" +
		"+++ b/docs/NEW.md\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+x\n" +
		"+y\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}

	c := changes[0]
	if c.Kind() != Create {
		t.Fatalf("expected create, got %s", c.Kind())
	}
	if c.Path != "docs/NEW.md" {
		t.Fatalf("unexpected path %q", c.Path)
	}
	if c.CreatedContent != "x\ny\n" {
		t.Fatalf("unexpected created content %q", c.CreatedContent)
	}
}

func TestParse_DeleteRecord(t *testing.T) {
	patch := "--- a/old.txt\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-a\n" +
		"-b\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	if changes[0].Kind() != Delete {
		t.Fatalf("expected delete, got %s", changes[0].Kind())
	}
	if changes[0].Path != "old.txt" {
		t.Fatalf("unexpected path %q", changes[0].Path)
	}
}

func TestParse_DanglingOriginMarkerDiscarded(t *testing.T) {
	patch := "--- a/lonely.go\n" +
		"some prose the model emitted\n" +
		"--- a/real.go\n" +
		"+++ b/real.go\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-x\n" +
		"+y\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected only the well-formed record, got %d", len(changes))
	}
	if changes[0].Path != "real.go" {
		t.Fatalf("unexpected path %q", changes[0].Path)
	}
}

func TestParse_HeaderWithoutHunks(t *testing.T) {
	patch := "--- a/empty.go\n+++ b/empty.go\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	if len(changes[0].Hunks) != 0 {
		t.Fatalf("expected zero hunks, got %d", len(changes[0].Hunks))
	}
}

func TestParse_MultipleFiles(t *testing.T) {
	patch := "--- a/one.go\n" +
		"+++ b/one.go\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-a\n" +
		"+b\n" +
		"--- /dev/null\n" +
		"+++ b/two.go\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+c\n"

	changes := Parse(patch)
	if len(changes) != 2 {
		t.Fatalf("expected two changes, got %d", len(changes))
	}
	if changes[0].Path != "one.go" || changes[1].Path != "two.go" {
		t.Fatalf("unexpected paths %q, %q", changes[0].Path, changes[1].Path)
	}
	if changes[1].CreatedContent != "c\n" {
		t.Fatalf("unexpected created content %q", changes[1].CreatedContent)
	}
}

func TestParse_IgnoresUnknownLines(t *testing.T) {
	patch := "diff --git a/x.go b/x.go\n" +
		"index 83db48f..bf269f4 100644\n" +
		"--- a/x.go\n" +
		"+++ b/x.go\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-a\n" +
		"+b\n" +
		"\\ No newline at end of file\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	if len(changes[0].Hunks[0].Ops) != 2 {
		t.Fatalf("expected two ops, got %d", len(changes[0].Hunks[0].Ops))
	}
}

func TestParse_RawTargetMarkerUsedWhenUnprefixed(t *testing.T) {
	patch := "--- main.py\n" +
		"+++ main.py\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-a\n" +
		"+b\n"

	changes := Parse(patch)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	if changes[0].Path != "main.py" {
		t.Fatalf("unexpected path %q", changes[0].Path)
	}
	if changes[0].OriginTagged {
		t.Fatalf("unprefixed origin should not be tagged")
	}
}
