package findings

import "sort"

// FileReference identifies a candidate file returned by a code search query.
// It lives only for the duration of one fetch-and-extract cycle.
type FileReference struct {
	Repository string // repository full name, e.g. "org/repo"
	Path       string // file path within the repository
	HTMLURL    string // human-facing URL for the file
	ContentURL string // API locator used to fetch full content
}

// RawMatch is one detected occurrence inside a fetched file, before scoring
// and classification.
type RawMatch struct {
	Type        string // catalog rule name, or the domain-reference fallback
	Text        string // full matched line, trimmed
	LineNumber  int    // 1-based line number within the file
	MatchedText string // exact substring the rule matched
}

// Finding is a single reported occurrence of a potential secret or credential
// leak: scored, classified, and carrying enough context to render.
type Finding struct {
	Repository     string  `json:"repository"`
	FilePath       string  `json:"file_path"`
	Finding        string  `json:"finding"`
	LineNumber     int     `json:"line_number,omitempty"`
	RiskScore      float64 `json:"risk_score"`
	Classification string  `json:"classification"`
	GithubURL      string  `json:"github_url"`
	RawContent     string  `json:"raw_content,omitempty"`
}

// dedupPrefixLen bounds the finding-text part of the identity key so near
// duplicates with long trailing noise still collapse.
const dedupPrefixLen = 50

// DedupKey derives the identity key used to collapse duplicate findings
// across queries: repository, file path and a bounded prefix of the text.
func (f Finding) DedupKey() string {
	text := f.Finding
	if len(text) > dedupPrefixLen {
		text = text[:dedupPrefixLen]
	}
	return f.Repository + ":" + f.FilePath + ":" + text
}

// Deduplicate keeps the first occurrence for each identity key, preserving
// the input order of the survivors.
func Deduplicate(list []Finding) []Finding {
	seen := make(map[string]bool, len(list))
	unique := make([]Finding, 0, len(list))

	for _, f := range list {
		key := f.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, f)
	}
	return unique
}

// SortByRiskScore orders findings by risk score descending. The sort is
// stable so equal scores keep their discovery order.
func SortByRiskScore(list []Finding) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].RiskScore > list[j].RiskScore
	})
}

// Truncate bounds the list to at most max findings.
func Truncate(list []Finding, max int) []Finding {
	if max >= 0 && len(list) > max {
		return list[:max]
	}
	return list
}

// MaxRiskScore returns the highest score in the list, 0.0 when empty.
func MaxRiskScore(list []Finding) float64 {
	var max float64
	for _, f := range list {
		if f.RiskScore > max {
			max = f.RiskScore
		}
	}
	return max
}
