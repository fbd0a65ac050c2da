package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leeky-osint/leeky/internal/findings"
)

func TestRuleIDFor(t *testing.T) {
	testCases := []struct {
		classification string
		expected       string
	}{
		{"API Keys & Secrets", "api-keys-secrets"},
		{"Credentials & Passwords", "credentials-passwords"},
		{"Domain References", "domain-references"},
		{"Configuration Files", "configuration-files"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ruleIDFor(tc.classification))
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "error", levelFor(9.8))
	assert.Equal(t, "error", levelFor(8.0))
	assert.Equal(t, "warning", levelFor(7.5))
	assert.Equal(t, "warning", levelFor(5.0))
	assert.Equal(t, "note", levelFor(3.0))
	assert.Equal(t, "note", levelFor(0.0))
}

func TestFromFindings(t *testing.T) {
	results := []findings.Finding{
		{
			Repository:     "org/repo",
			FilePath:       "conf/.env",
			Finding:        `SECRET_KEY="abcdefghij1234567890XY"`,
			LineNumber:     2,
			RiskScore:      9.2,
			Classification: "API Keys & Secrets",
			GithubURL:      "https://github.com/org/repo/blob/main/conf/.env",
		},
		{
			Repository:     "org/repo",
			FilePath:       "settings.py",
			Finding:        "password=hunter2",
			LineNumber:     14,
			RiskScore:      7.5,
			Classification: "Credentials & Passwords",
		},
		{
			Repository:     "org/other",
			FilePath:       "readme.md",
			Finding:        "hosted at example.com",
			LineNumber:     1,
			RiskScore:      3.0,
			Classification: "API Keys & Secrets", // same rule as the first
		},
	}

	report, err := FromFindings("example.com", results)
	assert.NoError(t, err)
	assert.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Len(t, run.Results, 3)
	// one rule per distinct classification
	assert.Len(t, run.Tool.Driver.Rules, 2)
}

func TestFromFindings_Empty(t *testing.T) {
	report, err := FromFindings("example.com", nil)
	assert.NoError(t, err)
	assert.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}
