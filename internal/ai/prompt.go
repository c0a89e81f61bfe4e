package ai

import (
	"encoding/json"

	"code-auditor/internal/analysis"
	"code-auditor/internal/scanner"
)

var systemPrompt = `You are a code audit assistant. Follow the user instructions exactly and never add prose around machine-readable output.`

const issueInstructions = `You are a code review assistant. Analyze the following files and return a JSON array of issues.
Each issue must be a JSON object with keys: title, description, severity (low|medium|high), file, line, type (bug|vuln|style|info).
Return only valid JSON - do not include extra explanation.`

const patchInstructions = `You are an expert software engineer. Given the files and the list of issues, produce one unified diff that fixes the issues.
Use standard unified diff format: "--- a/<path>" and "+++ b/<path>" header pairs, "@@ -start,count +start,count @@" hunk headers,
and body lines prefixed with a space (context), "+" (addition) or "-" (deletion).
Use "--- /dev/null" for new files and "+++ /dev/null" for deleted files.
Do not include explanations - only the diff.`

type promptFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type issuePayload struct {
	Instructions string       `json:"instructions"`
	Files        []promptFile `json:"files"`
}

type patchPayload struct {
	Instructions string           `json:"instructions"`
	Issues       []analysis.Issue `json:"issues"`
	Files        []promptFile     `json:"files"`
}

// BuildIssuePrompt packs the capped file set into the detection payload. The
// caller is expected to run the files through the chunker first.
func BuildIssuePrompt(files []scanner.File) string {
	payload := issuePayload{
		Instructions: issueInstructions,
		Files:        toPromptFiles(files),
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// BuildPatchPrompt asks for a unified diff in the exact grammar the patch
// engine understands; anything else would be silently dropped by the parser.
func BuildPatchPrompt(files []scanner.File, issues []analysis.Issue) string {
	payload := patchPayload{
		Instructions: patchInstructions,
		Issues:       issues,
		Files:        toPromptFiles(files),
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func toPromptFiles(files []scanner.File) []promptFile {
	out := make([]promptFile, len(files))
	for i, f := range files {
		out[i] = promptFile{Path: f.Path, Content: f.Content}
	}
	return out
}
