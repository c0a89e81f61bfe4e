package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"code-auditor/internal/scanner"
)

const longFunctionLines = 50

var varDeclRe = regexp.MustCompile(`\bvar\s+`)

// Enhancer finds improvement opportunities beyond outright bugs: refactoring,
// documentation, style, and project hygiene.
type Enhancer struct{}

func NewEnhancer() *Enhancer {
	return &Enhancer{}
}

func (e *Enhancer) Analyze(files []scanner.File) []Enhancement {
	var out []Enhancement

	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Path, ".py"):
			out = append(out, e.checkPython(f.Path, f.Content)...)
		case strings.HasSuffix(f.Path, ".js"), strings.HasSuffix(f.Path, ".jsx"):
			out = append(out, e.checkJavaScript(f.Path, f.Content)...)
		case strings.HasSuffix(f.Path, ".json"):
			out = append(out, e.checkJSON(f.Path, f.Content)...)
		}
	}

	return out
}

func (e *Enhancer) checkPython(path, content string) []Enhancement {
	var out []Enhancement
	lines := strings.Split(content, "\n")

	// Loop + append is usually a list comprehension in disguise.
	if strings.Contains(content, "for ") && strings.Contains(content, ".append(") {
		for idx, line := range lines {
			if !strings.Contains(line, "for ") {
				continue
			}
			window := lines[idx:min(idx+5, len(lines))]
			if containsAny(window, ".append(") {
				out = append(out, Enhancement{
					Title:       "Use list comprehension instead of loop",
					Description: fmt.Sprintf("Line %d: Consider replacing loop+append with list comprehension for better performance", idx+1),
					File:        path,
					Line:        idx + 1,
					Type:        "performance",
					Severity:    "low",
					Suggestion:  "Replace with: [expr for item in iterable]",
				})
				break
			}
		}
	}

	if strings.Contains(content, "def ") && !strings.Contains(content, `"""`) {
		for idx, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "def ") && idx+1 < len(lines) {
				out = append(out, Enhancement{
					Title:       "Missing function docstring",
					Description: fmt.Sprintf("Function at line %d lacks documentation", idx+1),
					File:        path,
					Line:        idx + 1,
					Type:        "documentation",
					Severity:    "low",
					Suggestion:  "Add docstring with function description, args, and return value",
				})
			}
		}
	}

	out = append(out, e.checkLongFunctions(path, lines, "def ")...)

	return out
}

func (e *Enhancer) checkLongFunctions(path string, lines []string, marker string) []Enhancement {
	var out []Enhancement

	start := -1
	count := 0
	flush := func(end int) {
		if start >= 0 && count > longFunctionLines {
			out = append(out, Enhancement{
				Title:       "Long function detected",
				Description: fmt.Sprintf("Function starting at line %d spans %d lines", start+1, count),
				File:        path,
				Line:        start + 1,
				Type:        "maintainability",
				Severity:    "medium",
				Suggestion:  "Consider breaking into smaller functions",
			})
		}
	}

	for idx, line := range lines {
		if strings.HasPrefix(line, marker) {
			flush(idx)
			start = idx
			count = 0
			continue
		}
		count++
	}
	flush(len(lines))

	return out
}

func (e *Enhancer) checkJavaScript(path, content string) []Enhancement {
	var out []Enhancement
	lines := strings.Split(content, "\n")

	for idx, line := range lines {
		if strings.Contains(line, "console.log") {
			out = append(out, Enhancement{
				Title:       "Remove console.log for production",
				Description: fmt.Sprintf("Line %d: Debug logging should be removed before deployment", idx+1),
				File:        path,
				Line:        idx + 1,
				Type:        "performance",
				Severity:    "low",
				Suggestion:  "Remove or use proper logging library",
			})
		}
	}

	if varDeclRe.MatchString(content) {
		for idx, line := range lines {
			if strings.Contains(line, "var ") && !strings.HasPrefix(strings.TrimSpace(line), "//") {
				out = append(out, Enhancement{
					Title:       "Use const/let instead of var",
					Description: fmt.Sprintf("Line %d: var has function scope, use const/let for block scope", idx+1),
					File:        path,
					Line:        idx + 1,
					Type:        "best-practices",
					Severity:    "low",
					Suggestion:  "Replace var with const or let",
				})
			}
		}
	}

	for idx, line := range lines {
		stripped := strings.TrimRight(line, " \t")
		if stripped == "" || !strings.Contains(line, "=") {
			continue
		}
		if hasAnySuffix(stripped, ";", "{", "}", "//", "*/") {
			continue
		}
		if strings.Contains(line, "import") || strings.Contains(line, "export") || strings.Contains(line, "//") {
			continue
		}
		out = append(out, Enhancement{
			Title:       "Missing semicolon",
			Description: fmt.Sprintf("Line %d: JavaScript line should end with semicolon", idx+1),
			File:        path,
			Line:        idx + 1,
			Type:        "style",
			Severity:    "low",
			Suggestion:  "Add semicolon at end of line",
		})
	}

	return out
}

func (e *Enhancer) checkJSON(path, content string) []Enhancement {
	var out []Enhancement

	if !strings.Contains(path, "package.json") {
		return out
	}

	var data struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return out
	}

	if _, ok := data.Scripts["lint"]; !ok {
		out = append(out, Enhancement{
			Title:       "Add lint script",
			Description: "package.json missing lint script for code quality checks",
			File:        path,
			Line:        1,
			Type:        "best-practices",
			Severity:    "low",
			Suggestion:  `Add "lint": "eslint ." to scripts`,
		})
	}

	if _, ok := data.Scripts["test"]; !ok {
		out = append(out, Enhancement{
			Title:       "Add test script",
			Description: "package.json missing test script",
			File:        path,
			Line:        1,
			Type:        "best-practices",
			Severity:    "medium",
			Suggestion:  `Add "test": "jest" to scripts`,
		})
	}

	return out
}

func containsAny(lines []string, needle string) bool {
	for _, l := range lines {
		if strings.Contains(l, needle) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
