package analysis

// Issue is a bug, vulnerability, or style finding against one file.
type Issue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Type        string `json:"type"`
}

// Enhancement is an improvement opportunity rather than a defect.
type Enhancement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Suggestion  string `json:"suggestion"`
}

type SuggestedChange struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// FileSuggestion ranks one file by how urgently it needs attention.
type FileSuggestion struct {
	File              string            `json:"file"`
	IssuesCount       int               `json:"issues_count"`
	EnhancementsCount int               `json:"enhancements_count"`
	Priority          string            `json:"priority"`
	SuggestedChanges  []SuggestedChange `json:"suggested_changes"`
}
