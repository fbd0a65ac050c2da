package dorker

import (
	"fmt"
	"time"
)

// dorkTemplates are the crafted search queries issued for every scan, in a
// fixed order tuned for GitHub code search syntax. The order is part of the
// result contract: dedup keeps the first occurrence across templates.
var dorkTemplates = []string{
	`filename:.env "%s"`,
	`"%s" password`,
	`"%s" api_key`,
	`"%s" secret`,
	`filename:config.json "%s"`,
	`filename:docker-compose.yml "%s"`,
	`"%s" database_url`,
	`"%s" DB_PASSWORD`,
	`"%s" SECRET_KEY`,
	`filename:.yml "%s" password`,
}

// QueriesFor renders the dork templates for a target domain in execution
// order.
func QueriesFor(domain string) []string {
	queries := make([]string, len(dorkTemplates))
	for i, template := range dorkTemplates {
		queries[i] = fmt.Sprintf(template, domain)
	}
	return queries
}

// Pacing is the scheduling policy applied between external calls. GitHub's
// abuse-rate detection punishes bursts, so the inter-template delay grows
// with the template's position.
type Pacing struct {
	FetchDelay   time.Duration // between successive search and content calls
	TemplateBase time.Duration // floor of the inter-template delay
	TemplateStep time.Duration // added per template index
}

// TemplateDelay returns the pause after the template at the given index.
func (p Pacing) TemplateDelay(index int) time.Duration {
	return p.TemplateBase + time.Duration(index)*p.TemplateStep
}
