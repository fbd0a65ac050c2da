package secrets

import (
	"strings"

	"github.com/leeky-osint/leeky/internal/findings"
)

var (
	// prodKeywords raise the score: a credential next to production markers
	// is more likely to be live.
	prodKeywords = []string{"prod", "production", "live", "main"}

	// testKeywords lower the score: fixtures and samples are usually inert.
	testKeywords = []string{"test", "dev", "example", "demo", "sample"}

	// configExts mark file paths that typically hold real configuration.
	configExts = []string{".env", ".config", ".yml", ".yaml", ".json"}
)

const (
	minRiskScore = 0.0
	maxRiskScore = 10.0
)

// Score maps a raw match and the path of the file it came from to a severity
// in [0, 10]. Adjustments are additive; the clamp is applied last.
func Score(match findings.RawMatch, filePath string) float64 {
	score := baseWeight(match.Type)

	textLower := strings.ToLower(match.Text)
	if containsAny(textLower, prodKeywords) {
		score += 1.0
	}
	if containsAny(textLower, testKeywords) {
		score -= 2.0
	}
	if containsAny(filePath, configExts) {
		score += 0.5
	}

	if score < minRiskScore {
		return minRiskScore
	}
	if score > maxRiskScore {
		return maxRiskScore
	}
	return score
}

// classifications maps rule types to the human-facing category labels used
// for grouping findings.
var classifications = map[string]string{
	"api_key":       "API Keys & Secrets",
	"secret_key":    "API Keys & Secrets",
	"password":      "Credentials & Passwords",
	"database_url":  "Database Credentials",
	"aws_key":       "Cloud Credentials",
	"github_token":  "Version Control Tokens",
	"jwt_secret":    "Authentication Secrets",
	DomainReference: "Domain References",
}

// defaultClassification labels rule types outside the fixed table.
const defaultClassification = "Configuration Files"

// Classify maps a rule type to its category label. Unknown types get the
// default label rather than an error.
func Classify(ruleType string) string {
	if label, ok := classifications[ruleType]; ok {
		return label
	}
	return defaultClassification
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
