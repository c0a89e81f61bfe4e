package github

import "testing"

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in    string
		owner string
		repo  string
	}{
		{"https://github.com/golang/go", "golang", "go"},
		{"https://github.com/golang/go.git", "golang", "go"},
		{"https://github.com/golang/go/", "golang", "go"},
		{"git@github.com:golang/go.git", "golang", "go"},
		{"golang/go", "golang", "go"},
		{"http://www.github.com/golang/go", "golang", "go"},
	}

	for _, tc := range cases {
		owner, repo, err := ParseRepoURL(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if owner != tc.owner || repo != tc.repo {
			t.Fatalf("%s: got %s/%s want %s/%s", tc.in, owner, repo, tc.owner, tc.repo)
		}
	}
}

func TestParseRepoURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "justaname", "https://github.com/", "https://gitlab.com/a"} {
		if _, _, err := ParseRepoURL(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}
