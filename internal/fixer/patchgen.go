package fixer

import (
	"fmt"
	"sort"
	"strings"

	"code-auditor/internal/analysis"
	"code-auditor/internal/hosting"
	"code-auditor/internal/scanner"
)

// EnhancementPatch turns automatable enhancements into one unified diff text.
// Enhancements with no matching fix rule are skipped; at most one fix per file
// is applied so hunk line numbers stay valid against the original content.
func EnhancementPatch(enhancements []analysis.Enhancement, files []scanner.File) (string, int) {
	byPath := make(map[string]string, len(files))
	for _, f := range files {
		byPath[f.Path] = f.Content
	}

	var b strings.Builder
	fixed := 0
	done := map[string]bool{}

	for _, e := range enhancements {
		if e.File == "" || done[e.File] {
			continue
		}
		content, ok := byPath[e.File]
		if !ok {
			continue
		}

		next, ok := GenerateFix(e, content)
		if !ok {
			continue
		}
		d := BuildFileDiff(e.File, content, next)
		if d == "" {
			continue
		}

		b.WriteString(d)
		done[e.File] = true
		fixed++
	}

	return b.String(), fixed
}

// DeploymentPatch emits a unified diff creating the hosting provider's config
// files plus an .env.example and a DEPLOYMENT.md walkthrough. Existing files
// are left alone.
func DeploymentPatch(p hosting.Provider, repoName string, files []scanner.File) string {
	existing := make(map[string]bool, len(files))
	for _, f := range files {
		existing[f.Path] = true
	}

	var b strings.Builder
	for _, cf := range p.ConfigFiles {
		if existing[cf.Path] {
			continue
		}
		b.WriteString(BuildCreateDiff(cf.Path, cf.Content))
	}

	if len(p.EnvVars) > 0 && !existing[".env.example"] {
		b.WriteString(BuildCreateDiff(".env.example", envExample(p)))
	}
	if !existing["DEPLOYMENT.md"] {
		b.WriteString(BuildCreateDiff("DEPLOYMENT.md", deploymentGuide(p, repoName)))
	}

	return b.String()
}

func envExample(p hosting.Provider) string {
	keys := make([]string, 0, len(p.EnvVars))
	for k := range p.EnvVars {
		keys = append(keys, k)
	}
	// Map order is random; sort for stable diffs.
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "# Environment variables for %s\n", p.Name)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s= # %s\n", k, p.EnvVars[k])
	}
	return b.String()
}

func deploymentGuide(p hosting.Provider, repoName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Deploying %s to %s\n\n", repoName, p.Name)

	b.WriteString("## Steps\n\n")
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	if len(p.Suggestions) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, s := range p.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	return b.String()
}
