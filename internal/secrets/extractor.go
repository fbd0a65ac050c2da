package secrets

import (
	"strings"

	"github.com/leeky-osint/leeky/internal/findings"
)

// keywordStems pre-filters lines before pattern matching. A line with none
// of these and no domain mention is never a credible finding, and skipping it
// keeps the looser patterns from firing on unrelated text.
var keywordStems = []string{"password", "secret", "key", "token", "api", "auth", "credential"}

// domainRulePosition is where the per-scan domain rule sits in the combined
// rule list, which fixes the discovery order of matches within a line.
const domainRulePosition = 5

// Extractor scans fetched file content for catalog matches relevant to a
// single target domain.
type Extractor struct {
	domain       string
	domainLower  string
	rules        []Rule
	perFileLimit int
}

// NewExtractor builds an extractor for one domain. perFileLimit caps the
// number of raw matches reported per file, in discovery order.
func NewExtractor(domain string, perFileLimit int) *Extractor {
	rules := make([]Rule, 0, len(catalog)+1)
	rules = append(rules, catalog[:domainRulePosition]...)
	rules = append(rules, newDomainRule(domain))
	rules = append(rules, catalog[domainRulePosition:]...)

	return &Extractor{
		domain:       domain,
		domainLower:  strings.ToLower(domain),
		rules:        rules,
		perFileLimit: perFileLimit,
	}
}

// relevant reports whether a lower-cased line is worth matching: it mentions
// the domain or carries at least one credential keyword stem.
func (e *Extractor) relevant(lineLower string) bool {
	if strings.Contains(lineLower, e.domainLower) {
		return true
	}
	for _, keyword := range keywordStems {
		if strings.Contains(lineLower, keyword) {
			return true
		}
	}
	return false
}

// Extract runs the catalog over the file content and returns raw matches.
// A line may yield several matches (one per rule occurrence). When no rule
// fires anywhere but the domain appears in the content, a single
// domain-reference match is synthesized from the first line mentioning it.
func (e *Extractor) Extract(content string) []findings.RawMatch {
	var matches []findings.RawMatch
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if !e.relevant(strings.ToLower(line)) {
			continue
		}

		for _, rule := range e.rules {
			for _, matched := range rule.Pattern.FindAllString(line, -1) {
				matches = append(matches, findings.RawMatch{
					Type:        rule.Name,
					Text:        strings.TrimSpace(line),
					LineNumber:  i + 1,
					MatchedText: matched,
				})
			}
		}
	}

	if len(matches) == 0 && strings.Contains(strings.ToLower(content), e.domainLower) {
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line), e.domainLower) {
				matches = append(matches, findings.RawMatch{
					Type:        DomainReference,
					Text:        strings.TrimSpace(line),
					LineNumber:  i + 1,
					MatchedText: e.domain,
				})
				break // one reference per file
			}
		}
	}

	if len(matches) > e.perFileLimit {
		matches = matches[:e.perFileLimit]
	}
	return matches
}
