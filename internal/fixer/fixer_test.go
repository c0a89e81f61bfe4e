package fixer

import (
	"strings"
	"testing"

	"code-auditor/internal/analysis"
	"code-auditor/internal/diff"
	"code-auditor/internal/hosting"
	"code-auditor/internal/patch"
	"code-auditor/internal/scanner"
)

func TestGenerateFix_ConsoleLog(t *testing.T) {
	content := "function run() {\n  console.log('hi');\n}\n"
	e := analysis.Enhancement{Title: "Remove console.log for production", File: "app.js", Line: 2}

	got, ok := GenerateFix(e, content)
	if !ok {
		t.Fatalf("expected a fix")
	}
	if !strings.Contains(got, "  // console.log('hi');") {
		t.Fatalf("console.log not commented out:\n%s", got)
	}
}

func TestGenerateFix_VarToConst(t *testing.T) {
	content := "var total = 0;\n"
	e := analysis.Enhancement{Title: "Use const/let instead of var", File: "app.js", Line: 1}

	got, ok := GenerateFix(e, content)
	if !ok || got != "const total = 0;\n" {
		t.Fatalf("unexpected fix %q ok=%v", got, ok)
	}
}

func TestGenerateFix_MatchesAnalyzerTitles(t *testing.T) {
	content := "var total = 0;\n"
	enhancements := analysis.NewEnhancer().Analyze([]scanner.File{{Path: "app.js", Content: content}})

	fixed := false
	for _, e := range enhancements {
		if e.Title != "Use const/let instead of var" {
			continue
		}
		got, ok := GenerateFix(e, content)
		if !ok || got != "const total = 0;\n" {
			t.Fatalf("analyzer title did not trigger the var rule: %q ok=%v", got, ok)
		}
		fixed = true
	}
	if !fixed {
		t.Fatalf("analyzer never emitted the var enhancement: %+v", enhancements)
	}
}

func TestGenerateFix_Semicolon(t *testing.T) {
	content := "const x = 1\n"
	e := analysis.Enhancement{Title: "Missing semicolon", File: "app.js", Line: 1}

	got, ok := GenerateFix(e, content)
	if !ok || got != "const x = 1;\n" {
		t.Fatalf("unexpected fix %q ok=%v", got, ok)
	}
}

func TestGenerateFix_Docstring(t *testing.T) {
	content := "def add(a, b):\n    return a + b\n"
	e := analysis.Enhancement{Title: "Missing function docstring", File: "util.py", Line: 1}

	got, ok := GenerateFix(e, content)
	if !ok {
		t.Fatalf("expected a fix")
	}
	if !strings.Contains(got, `    """`) || !strings.Contains(got, "Args:") {
		t.Fatalf("docstring not inserted:\n%s", got)
	}
	if !strings.HasPrefix(got, "def add(a, b):\n") {
		t.Fatalf("def line should stay first:\n%s", got)
	}
}

func TestGenerateFix_NpmScript(t *testing.T) {
	content := `{"name":"demo","scripts":{"start":"node index.js"}}`
	e := analysis.Enhancement{Title: "Add lint script", File: "package.json", Line: 1}

	got, ok := GenerateFix(e, content)
	if !ok {
		t.Fatalf("expected a fix")
	}
	if !strings.Contains(got, `"lint": "eslint ."`) {
		t.Fatalf("lint script missing:\n%s", got)
	}
}

func TestGenerateFix_NoRule(t *testing.T) {
	e := analysis.Enhancement{Title: "Something exotic", File: "x.rb", Line: 1}
	if _, ok := GenerateFix(e, "puts 'hi'\n"); ok {
		t.Fatalf("expected no fix for unknown rule")
	}
}

func TestBuildFileDiff_RoundTrip(t *testing.T) {
	original := "a\nb\nc\n"
	fixed := "a\nB\nc\n"

	text := BuildFileDiff("f.txt", original, fixed)
	changes := diff.Parse(text)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}

	res := patch.ApplyToContent(original, changes[0])
	if res.Content != fixed {
		t.Fatalf("round trip mismatch: got %q want %q", res.Content, fixed)
	}
}

func TestBuildFileDiff_InsertionRoundTrip(t *testing.T) {
	original := "one\ntwo\nthree\n"
	fixed := "one\ntwo\ninserted\nthree\n"

	text := BuildFileDiff("f.txt", original, fixed)
	res := patch.ApplyToContent(original, diff.Parse(text)[0])
	if res.Content != fixed {
		t.Fatalf("round trip mismatch: got %q want %q", res.Content, fixed)
	}
}

func TestBuildFileDiff_Identical(t *testing.T) {
	if d := BuildFileDiff("f.txt", "same\n", "same\n"); d != "" {
		t.Fatalf("expected empty diff, got %q", d)
	}
}

func TestBuildCreateDiff(t *testing.T) {
	text := BuildCreateDiff("new.txt", "hello\nworld\n")
	changes := diff.Parse(text)
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	if changes[0].Kind() != diff.Create {
		t.Fatalf("expected create, got %v", changes[0].Kind())
	}
	if changes[0].CreatedContent != "hello\nworld\n" {
		t.Fatalf("unexpected content %q", changes[0].CreatedContent)
	}
}

func TestEnhancementPatch(t *testing.T) {
	files := []scanner.File{
		{Path: "app.js", Content: "var total = 0;\nconsole.log(total);\n"},
		{Path: "lib.js", Content: "const x = 1\n"},
	}
	enhancements := []analysis.Enhancement{
		{Title: "Use const/let instead of var", File: "app.js", Line: 1},
		{Title: "Remove console.log for production", File: "app.js", Line: 2},
		{Title: "Missing semicolon", File: "lib.js", Line: 1},
	}

	text, fixed := EnhancementPatch(enhancements, files)
	if fixed != 2 {
		t.Fatalf("expected one fix per file (2 total), got %d", fixed)
	}

	changes := diff.Parse(text)
	if len(changes) != 2 {
		t.Fatalf("expected two file changes, got %d", len(changes))
	}

	res := patch.ApplyToContent(files[0].Content, changes[0])
	if res.Content != "const total = 0;\nconsole.log(total);\n" {
		t.Fatalf("unexpected app.js result %q", res.Content)
	}
}

func TestDeploymentPatch(t *testing.T) {
	p := mustProvider(t, "vercel")
	files := []scanner.File{{Path: "package.json", Content: "{}"}}

	text := DeploymentPatch(p, "demo", files)
	changes := diff.Parse(text)

	paths := map[string]bool{}
	for _, c := range changes {
		if c.Kind() != diff.Create {
			t.Fatalf("deployment patch should only create files, got %v for %s", c.Kind(), c.Path)
		}
		paths[c.Path] = true
	}
	for _, want := range []string{"vercel.json", ".env.example", "DEPLOYMENT.md"} {
		if !paths[want] {
			t.Fatalf("missing %s in %v", want, paths)
		}
	}
}

func TestDeploymentPatch_SkipsExisting(t *testing.T) {
	p := mustProvider(t, "vercel")
	files := []scanner.File{{Path: "vercel.json", Content: "{}"}}

	text := DeploymentPatch(p, "demo", files)
	for _, c := range diff.Parse(text) {
		if c.Path == "vercel.json" {
			t.Fatalf("existing vercel.json should not be recreated")
		}
	}
}

func mustProvider(t *testing.T, key string) hosting.Provider {
	t.Helper()
	p, ok := hosting.Get(key)
	if !ok {
		t.Fatalf("provider %s missing", key)
	}
	return p
}
