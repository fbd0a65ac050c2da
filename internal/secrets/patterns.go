package secrets

import "regexp"

// DomainReference is the fallback rule type reported when a file mentions the
// target domain but no credential pattern fires.
const DomainReference = "domain_reference"

// Rule is one entry of the detection catalog: a named, case-insensitive
// pattern with a base risk weight.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  float64
}

// catalog holds the static detection rules, compiled once at startup and
// shared read-only across scans. Order matters: matches are discovered in
// catalog order within a line, and discovery order feeds the per-file cap.
var catalog = []Rule{
	{"api_key", regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[=:]\s*["']?([a-zA-Z0-9_-]{20,})["']?`), 9.0},
	{"secret_key", regexp.MustCompile(`(?i)(secret[_-]?key|secretkey)\s*[=:]\s*["']?([a-zA-Z0-9_-]{20,})["']?`), 9.2},
	{"password", regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*["']?([^\s"']{3,})["']?`), 7.5},
	{"database_url", regexp.MustCompile(`(?i)(database[_-]?url|db[_-]?url)\s*[=:]\s*["']?([^\s"']+)["']?`), 8.5},
	{"aws_key", regexp.MustCompile(`(?i)(aws[_-]?access[_-]?key|AKIA[0-9A-Z]{16})`), 9.5},
	{"github_token", regexp.MustCompile(`(?i)(gh[ps]_[a-zA-Z0-9]{36})`), 9.8},
	{"jwt_secret", regexp.MustCompile(`(?i)(jwt[_-]?secret|token[_-]?secret)\s*[=:]\s*["']?([a-zA-Z0-9_-]{10,})["']?`), 8.8},
}

// domainReferenceWeight is the base weight of the per-scan domain rule.
const domainReferenceWeight = 3.0

// defaultWeight is used for rule names outside the catalog. The catalog is
// closed, so this is a safety net rather than a reachable path.
const defaultWeight = 5.0

// newDomainRule compiles the per-scan rule matching literal occurrences of
// the target domain. Regex metacharacters in the domain are escaped.
func newDomainRule(domain string) Rule {
	return Rule{
		Name:    DomainReference,
		Pattern: regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(domain) + `)`),
		Weight:  domainReferenceWeight,
	}
}

// baseWeight resolves the scoring weight for a rule type.
func baseWeight(ruleType string) float64 {
	if ruleType == DomainReference {
		return domainReferenceWeight
	}
	for _, rule := range catalog {
		if rule.Name == ruleType {
			return rule.Weight
		}
	}
	return defaultWeight
}
