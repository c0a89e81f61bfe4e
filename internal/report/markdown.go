package report

import (
	"fmt"
	"strings"

	"code-auditor/internal/audit"
)

// Markdown renders the audit as a report suitable for a GitHub issue body or
// an email.
func Markdown(r audit.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Code Audit Report: %s\n\n", r.Repo)
	fmt.Fprintf(&b, "Scanned **%d** files. Found **%d** issues and **%d** enhancement opportunities.\n\n",
		r.FilesScanned, len(r.Issues), len(r.Enhancements))

	counts := r.SeverityCounts()
	if len(counts) > 0 {
		b.WriteString("| Severity | Count |\n|---|---|\n")
		for _, sev := range []string{"high", "medium", "low", "info"} {
			if counts[sev] > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", sev, counts[sev])
			}
		}
		b.WriteString("\n")
	}

	if len(r.Issues) > 0 {
		b.WriteString("## Issues\n\n")
		for _, is := range r.Issues {
			fmt.Fprintf(&b, "- **%s** (`%s:%d`, %s): %s\n", is.Title, is.File, is.Line, is.Severity, is.Description)
		}
		b.WriteString("\n")
	}

	if len(r.Enhancements) > 0 {
		b.WriteString("## Enhancements\n\n")
		for _, e := range r.Enhancements {
			fmt.Fprintf(&b, "- **%s** (`%s:%d`): %s\n", e.Title, e.File, e.Line, e.Suggestion)
		}
		b.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		b.WriteString("## Files to fix first\n\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "- `%s` — priority %s (%d issues, %d enhancements)\n",
				s.File, s.Priority, s.IssuesCount, s.EnhancementsCount)
		}
		b.WriteString("\n")
	}

	if r.Hosting != nil {
		fmt.Fprintf(&b, "## Deployment\n\nRecommended platform: **%s**\n\n", r.Hosting.Name)
		for i, step := range r.Hosting.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}

	if r.PullRequestURL != "" {
		fmt.Fprintf(&b, "Automated fix PR: %s\n\n", r.PullRequestURL)
	}
	if len(r.IssueURLs) > 0 {
		b.WriteString("Filed issues:\n\n")
		for _, u := range r.IssueURLs {
			fmt.Fprintf(&b, "- %s\n", u)
		}
		b.WriteString("\n")
	}

	if r.CostUSD > 0 {
		fmt.Fprintf(&b, "_AI cost: $%.4f (%s %s)_\n", r.CostUSD, r.Provider, r.Model)
	}

	return b.String()
}
