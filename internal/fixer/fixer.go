package fixer

import (
	"encoding/json"
	"strings"

	"code-auditor/internal/analysis"
)

// GenerateFix synthesizes fixed file content for one enhancement. The rules
// are intentionally mechanical: each maps a known suggestion title onto a
// local text edit. Returns false when no rule applies or the edit is a no-op.
func GenerateFix(e analysis.Enhancement, content string) (string, bool) {
	title := strings.ToLower(e.Title)
	file := strings.ToLower(e.File)

	switch {
	case strings.Contains(title, "list comprehension") && strings.HasSuffix(file, ".py"):
		return insertComprehensionNote(content, e.Line)

	case strings.Contains(title, "docstring") && strings.HasSuffix(file, ".py"):
		return insertDocstring(content, e.Line)

	case strings.Contains(title, "long function"):
		return insertRefactorNote(content, e.Line)

	case strings.Contains(title, "console.log"):
		return commentOutConsoleLog(content, e.Line)

	case strings.Contains(title, "var") && (strings.Contains(title, "const") || strings.Contains(title, "let")):
		return replaceVarWithConst(content, e.Line)

	case strings.Contains(title, "semicolon"):
		return appendSemicolon(content, e.Line)

	case strings.Contains(title, "lint") || strings.Contains(title, "test"):
		return addNpmScript(content, e)
	}

	return "", false
}

// splitKeepEnds mirrors Python's splitlines(keepends=True): each element
// keeps its trailing newline, and a missing final newline is preserved.
func splitKeepEnds(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func lineInRange(lines []string, line int) bool {
	return line > 0 && line <= len(lines)
}

func insertAt(lines []string, idx int, text string) string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, text)
	out = append(out, lines[idx:]...)
	return strings.Join(out, "")
}

func insertComprehensionNote(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}

	forIdx := -1
	lo := max(0, line-5)
	hi := min(len(lines), line+5)
	for i := lo; i < hi; i++ {
		if strings.Contains(lines[i], "for ") {
			forIdx = i
			break
		}
	}
	if forIdx < 0 {
		return "", false
	}

	return insertAt(lines, forIdx, "# NOTE: convert to list comprehension: [expr for item in iterable]\n"), true
}

func insertDocstring(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}

	def := lines[line-1]
	indent := len(def) - len(strings.TrimLeft(def, " \t"))
	pad := strings.Repeat(" ", indent+4)

	doc := pad + `"""` + "\n" +
		pad + "Function description.\n" +
		pad + "\n" +
		pad + "Args:\n" +
		pad + "    param: Description\n" +
		pad + "\n" +
		pad + "Returns:\n" +
		pad + "    Description of return value\n" +
		pad + `"""` + "\n"

	return insertAt(lines, line, doc), true
}

func insertRefactorNote(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}
	return insertAt(lines, line, "# REFACTOR: this function is too long, consider splitting into smaller helpers.\n"), true
}

func commentOutConsoleLog(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}

	target := lines[line-1]
	if !strings.Contains(target, "console.log") {
		return "", false
	}

	indent := target[:len(target)-len(strings.TrimLeft(target, " \t"))]
	lines[line-1] = indent + "// " + strings.TrimLeft(target, " \t")

	return strings.Join(lines, ""), true
}

func replaceVarWithConst(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}

	target := lines[line-1]
	if !strings.Contains(target, "var ") {
		return "", false
	}
	lines[line-1] = strings.Replace(target, "var ", "const ", 1)

	return strings.Join(lines, ""), true
}

func appendSemicolon(content string, line int) (string, bool) {
	lines := splitKeepEnds(content)
	if !lineInRange(lines, line) {
		return "", false
	}

	stripped := strings.TrimRight(lines[line-1], " \t\n")
	if strings.HasSuffix(stripped, ";") {
		return "", false
	}
	lines[line-1] = stripped + ";\n"

	return strings.Join(lines, ""), true
}

func addNpmScript(content string, e analysis.Enhancement) (string, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", false
	}

	scripts, _ := data["scripts"].(map[string]any)
	if scripts == nil {
		scripts = map[string]any{}
	}

	title := strings.ToLower(e.Title)
	changed := false

	if strings.Contains(title, "lint") {
		if _, ok := scripts["lint"]; !ok {
			scripts["lint"] = "eslint ."
			changed = true
		}
	} else if strings.Contains(title, "test") {
		if _, ok := scripts["test"]; !ok {
			scripts["test"] = "jest"
			changed = true
		}
	}
	if !changed {
		return "", false
	}

	data["scripts"] = scripts
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", false
	}

	return string(b), true
}
