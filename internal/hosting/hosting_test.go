package hosting

import (
	"testing"

	"code-auditor/internal/scanner"
)

func TestGet(t *testing.T) {
	p, ok := Get("  Vercel ")
	if !ok {
		t.Fatalf("expected vercel to exist")
	}
	if p.Name != "Vercel" || len(p.ConfigFiles) == 0 {
		t.Fatalf("unexpected provider %+v", p)
	}

	if _, ok := Get("gopherhost"); ok {
		t.Fatalf("unknown provider should not resolve")
	}
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 providers, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("providers not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestSuggest(t *testing.T) {
	node := Suggest([]scanner.File{{Path: "src/app.tsx"}, {Path: "package.json"}})
	if len(node) == 0 || node[0] != "vercel" {
		t.Fatalf("expected vercel first for node repo, got %v", node)
	}

	py := Suggest([]scanner.File{{Path: "app.py"}, {Path: "requirements.txt"}})
	if len(py) == 0 || py[0] != "render" {
		t.Fatalf("expected render first for python repo, got %v", py)
	}

	fallback := Suggest([]scanner.File{{Path: "README.md"}})
	if len(fallback) == 0 {
		t.Fatalf("expected fallback suggestions")
	}
}
