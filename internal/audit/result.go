package audit

import (
	"code-auditor/internal/analysis"
	"code-auditor/internal/hosting"
)

// Result is the full outcome of one audit job, stored for polling and fed to
// the report builders.
type Result struct {
	Repo         string `json:"repo"`
	FilesScanned int    `json:"files_scanned"`

	Issues       []analysis.Issue          `json:"issues"`
	Enhancements []analysis.Enhancement    `json:"enhancements"`
	Suggestions  []analysis.FileSuggestion `json:"file_suggestions"`

	PatchText        string `json:"patch,omitempty"`
	EnhancementPatch string `json:"enhancement_patch,omitempty"`
	DeploymentPatch  string `json:"deployment_patch,omitempty"`

	Hosting *hosting.Provider `json:"hosting,omitempty"`

	IssueURLs      []string `json:"issue_urls,omitempty"`
	PullRequestURL string   `json:"pull_request_url,omitempty"`

	Provider string  `json:"ai_provider,omitempty"`
	Model    string  `json:"ai_model,omitempty"`
	CostUSD  float64 `json:"cost_usd"`
}

// Counts are handy for summaries and metrics labels.
func (r Result) SeverityCounts() map[string]int {
	out := map[string]int{}
	for _, is := range r.Issues {
		out[is.Severity]++
	}
	return out
}
