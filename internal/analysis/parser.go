package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const issuesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "file"],
		"properties": {
			"title":       {"type": "string"},
			"description": {"type": "string"},
			"severity":    {"type": "string", "enum": ["low", "medium", "high"]},
			"file":        {"type": "string"},
			"line":        {"type": "integer"},
			"type":        {"type": "string"}
		}
	}
}`

var issuesSchemaLoader = gojsonschema.NewStringLoader(issuesSchema)

// ParseIssues decodes the model's issue listing. Models habitually wrap JSON
// in markdown fences, so those are stripped first; a single object is
// accepted and promoted to a one-element list.
func ParseIssues(raw string) ([]Issue, error) {
	text := StripFences(raw)

	var issues []Issue
	if err := json.Unmarshal([]byte(text), &issues); err != nil {
		var single Issue
		if err2 := json.Unmarshal([]byte(text), &single); err2 != nil {
			return nil, fmt.Errorf("decode issues: %w", err)
		}
		issues = []Issue{single}
	}

	b, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("re-encode issues: %w", err)
	}

	result, err := gojsonschema.Validate(issuesSchemaLoader, gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("validate issues: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("issues payload rejected: %s", schemaErrors(result))
	}

	return issues, nil
}

// StripFences removes a surrounding markdown code block if present.
func StripFences(text string) string {
	if strings.Contains(text, "```json") {
		parts := strings.SplitN(text, "```json", 2)
		text = parts[1]
		if idx := strings.Index(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.Contains(text, "```") {
		parts := strings.SplitN(text, "```", 3)
		if len(parts) >= 2 {
			text = parts[1]
		}
	}
	return strings.TrimSpace(text)
}

func schemaErrors(result *gojsonschema.Result) string {
	var msgs []string
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
