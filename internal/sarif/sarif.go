package sarif

import (
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/leeky-osint/leeky/internal/findings"
)

const (
	toolName       = "leeky"
	informationURI = "https://github.com/leeky-osint/leeky"
)

// FromFindings builds a SARIF 2.1.0 report from a scan's result set. One
// rule per classification label, one result per finding.
func FromFindings(domain string, results []findings.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, informationURI)

	registered := make(map[string]bool)
	for _, finding := range results {
		ruleID := ruleIDFor(finding.Classification)
		if !registered[ruleID] {
			run.AddRule(ruleID).WithDescription(finding.Classification)
			registered[ruleID] = true
		}

		message := fmt.Sprintf("%s (risk %.1f) for domain %q: %s",
			finding.Classification, finding.RiskScore, domain, finding.Finding)
		if finding.GithubURL != "" {
			message += " (" + finding.GithubURL + ")"
		}

		location := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(artifactURI(finding)))
		if finding.LineNumber > 0 {
			location.WithRegion(sarif.NewSimpleRegion(finding.LineNumber, finding.LineNumber))
		}

		run.CreateResultForRule(ruleID).
			WithLevel(levelFor(finding.RiskScore)).
			WithMessage(sarif.NewTextMessage(message)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(location))
	}

	report.AddRun(run)
	return report, nil
}

// artifactURI qualifies the file path with its repository so findings from
// different repositories never collapse onto one artifact.
func artifactURI(finding findings.Finding) string {
	if finding.Repository == "" {
		return finding.FilePath
	}
	return finding.Repository + "/" + finding.FilePath
}

// ruleIDFor turns a classification label into a SARIF rule identifier,
// e.g. "API Keys & Secrets" -> "api-keys-secrets".
func ruleIDFor(classification string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(classification) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// levelFor maps the numeric risk score onto SARIF severity levels.
func levelFor(score float64) string {
	switch {
	case score >= 8.0:
		return "error"
	case score >= 5.0:
		return "warning"
	default:
		return "note"
	}
}
