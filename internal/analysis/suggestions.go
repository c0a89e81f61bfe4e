package analysis

import "sort"

// BuildFileSuggestions folds issues and enhancements into a per-file ranking
// so a UI can point at the files most worth fixing first.
func BuildFileSuggestions(issues []Issue, enhancements []Enhancement) []FileSuggestion {
	byFile := map[string]*FileSuggestion{}

	get := func(file, priority string) *FileSuggestion {
		if s, ok := byFile[file]; ok {
			return s
		}
		s := &FileSuggestion{File: file, Priority: priority}
		byFile[file] = s
		return s
	}

	for _, issue := range issues {
		if issue.File == "" {
			continue
		}
		s := get(issue.File, "medium")
		s.IssuesCount++
		s.SuggestedChanges = append(s.SuggestedChanges, SuggestedChange{
			Type:  "fix",
			Title: issue.Title,
			Line:  issue.Line,
		})
	}

	for _, enh := range enhancements {
		if enh.File == "" {
			continue
		}
		s := get(enh.File, "low")
		s.EnhancementsCount++
		s.SuggestedChanges = append(s.SuggestedChanges, SuggestedChange{
			Type:  "enhancement",
			Title: enh.Title,
			Line:  enh.Line,
		})
	}

	result := make([]FileSuggestion, 0, len(byFile))
	for _, s := range byFile {
		if s.IssuesCount > 0 {
			s.Priority = "high"
		} else if s.EnhancementsCount > 3 {
			s.Priority = "medium"
		}
		result = append(result, *s)
	}

	// Deterministic output: highest priority first, then path.
	rank := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.Slice(result, func(i, j int) bool {
		if rank[result[i].Priority] != rank[result[j].Priority] {
			return rank[result[i].Priority] < rank[result[j].Priority]
		}
		return result[i].File < result[j].File
	})

	return result
}
