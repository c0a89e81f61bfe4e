package analysis

import "testing"

func TestParseIssues_PlainJSON(t *testing.T) {
	raw := `[{"title":"nil deref","description":"x may be nil","severity":"high","file":"main.go","line":10,"type":"bug"}]`

	issues, err := ParseIssues(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(issues) != 1 || issues[0].Title != "nil deref" || issues[0].Line != 10 {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestParseIssues_FencedJSON(t *testing.T) {
	raw := "Here you go:\n```json\n" +
		`[{"title":"eval","severity":"high","file":"a.py","line":3,"type":"vuln"}]` +
		"\n```\nLet me know if you need more."

	issues, err := ParseIssues(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(issues) != 1 || issues[0].File != "a.py" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestParseIssues_SingleObjectPromoted(t *testing.T) {
	raw := `{"title":"one","severity":"low","file":"x.go","line":1,"type":"style"}`

	issues, err := ParseIssues(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(issues) != 1 || issues[0].Title != "one" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestParseIssues_RejectsInvalidSeverity(t *testing.T) {
	raw := `[{"title":"bad","severity":"catastrophic","file":"x.go"}]`

	if _, err := ParseIssues(raw); err == nil {
		t.Fatalf("expected schema rejection")
	}
}

func TestParseIssues_RejectsProse(t *testing.T) {
	if _, err := ParseIssues("I could not find any issues, great job!"); err == nil {
		t.Fatalf("expected decode error for prose")
	}
}
