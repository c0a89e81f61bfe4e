package analysis

import (
	"fmt"
	"strings"

	"code-auditor/internal/scanner"
)

// HeuristicIssues is the terminal fallback when no AI provider answered:
// cheap textual checks that still surface something actionable.
func HeuristicIssues(files []scanner.File) []Issue {
	var issues []Issue

	for _, f := range files {
		if strings.Contains(f.Content, "eval(") {
			issues = append(issues, Issue{
				Title:       "Use of eval() detected",
				Description: fmt.Sprintf("Found eval() in %s", f.Path),
				Severity:    "high",
				File:        f.Path,
				Line:        findLine(f.Content, "eval("),
				Type:        "vuln",
			})
		}
		if strings.Contains(f.Content, "TODO") {
			issues = append(issues, Issue{
				Title:       "TODO found",
				Description: fmt.Sprintf("TODO in %s", f.Path),
				Severity:    "low",
				File:        f.Path,
				Line:        findLine(f.Content, "TODO"),
				Type:        "style",
			})
		}
	}

	if len(issues) == 0 {
		issues = append(issues, Issue{
			Title:       "No issues detected",
			Description: "No obvious issues found",
			Severity:    "low",
			Type:        "info",
		})
	}

	return issues
}

func findLine(content, needle string) int {
	for idx, line := range strings.Split(content, "\n") {
		if strings.Contains(line, needle) {
			return idx + 1
		}
	}
	return 0
}
