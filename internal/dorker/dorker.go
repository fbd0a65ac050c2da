package dorker

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/leeky-osint/leeky/internal/findings"
	"github.com/leeky-osint/leeky/internal/secrets"
	"github.com/leeky-osint/leeky/pkg/shared/config"
)

// Outcomes a capability implementation reports through error wrapping. The
// runner handles each case explicitly; none of them fails the scan.
var (
	// ErrRateLimited means the search capability refused the call; the
	// runner abandons the current template only.
	ErrRateLimited = errors.New("search rate limited")

	// ErrInvalidQuery means the query was rejected as malformed; the runner
	// skips the template.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrNotText means fetched content is binary or undecodable; the runner
	// skips the candidate file.
	ErrNotText = errors.New("content not decodable as text")
)

// Searcher is the paged code-search capability supplied by the host.
type Searcher interface {
	SearchCode(ctx context.Context, query string) ([]findings.FileReference, error)
}

// ContentFetcher returns decoded text content for a file reference.
type ContentFetcher interface {
	FetchContent(ctx context.Context, ref findings.FileReference) (string, error)
}

// snippetLength bounds the content prefix carried on each finding.
const snippetLength = 500

// Runner drives the dork templates against the search capability and
// aggregates findings across all of them. Calls are strictly sequential:
// discovery order within a file and template order across the run feed the
// dedup contract, and parallel issuance would only amplify rate limiting.
type Runner struct {
	searcher Searcher
	fetcher  ContentFetcher
	cfg      config.Dorker
	pacing   Pacing
	logger   hclog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a runner over the provided capabilities.
func New(searcher Searcher, fetcher ContentFetcher, cfg config.Dorker, logger hclog.Logger) *Runner {
	return &Runner{
		searcher: searcher,
		fetcher:  fetcher,
		cfg:      cfg,
		pacing: Pacing{
			FetchDelay:   cfg.FetchDelay,
			TemplateBase: cfg.TemplateBaseDelay,
			TemplateStep: cfg.TemplateStepDelay,
		},
		logger: logger,
		sleep:  sleepContext,
	}
}

// Run executes all dork templates for the domain and returns the
// deduplicated, score-ranked, truncated result set. On cancellation the
// findings collected so far are returned along with the context error.
func (r *Runner) Run(ctx context.Context, domain string) ([]findings.Finding, error) {
	extractor := secrets.NewExtractor(domain, r.cfg.PerFileLimit)
	queries := QueriesFor(domain)

	var all []findings.Finding
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return r.finalize(all), err
		}

		r.logger.Info("executing dork", "index", i+1, "total", len(queries), "query", query)
		results, err := r.runQuery(ctx, query, extractor)
		all = append(all, results...)
		if err != nil {
			return r.finalize(all), err
		}
		r.logger.Info("dork completed", "query", query, "findings", len(results))

		if i < len(queries)-1 {
			if err := r.sleep(ctx, r.pacing.TemplateDelay(i)); err != nil {
				return r.finalize(all), err
			}
		}
	}

	return r.finalize(all), nil
}

// runQuery executes one template: search, fetch each candidate, extract.
// Only context errors propagate; every per-query failure degrades to an
// empty result for the template.
func (r *Runner) runQuery(ctx context.Context, query string, extractor *secrets.Extractor) ([]findings.Finding, error) {
	if err := r.sleep(ctx, r.pacing.FetchDelay); err != nil {
		return nil, err
	}

	refs, err := r.searcher.SearchCode(ctx, query)
	switch {
	case err == nil:
	case errors.Is(err, ErrRateLimited):
		r.logger.Warn("rate limit hit, abandoning query", "query", query)
		return nil, nil
	case errors.Is(err, ErrInvalidQuery):
		r.logger.Warn("search query rejected, skipping template", "query", query)
		return nil, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		r.logger.Error("search failed, treating as empty", "query", query, "error", err)
		return nil, nil
	}

	var results []findings.Finding
	for _, ref := range refs {
		if err := r.sleep(ctx, r.pacing.FetchDelay); err != nil {
			return results, err
		}

		content, err := r.fetcher.FetchContent(ctx, ref)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return results, err
			}
			r.logger.Debug("skipping candidate", "repository", ref.Repository, "path", ref.Path, "error", err)
			continue
		}

		results = append(results, r.processFile(ref, content, extractor)...)
	}
	return results, nil
}

// processFile runs the extraction pipeline over one fetched file and
// annotates each raw match into a finding.
func (r *Runner) processFile(ref findings.FileReference, content string, extractor *secrets.Extractor) []findings.Finding {
	raw := extractor.Extract(content)
	if len(raw) == 0 {
		return nil
	}

	snippet := snippetOf(content)
	results := make([]findings.Finding, 0, len(raw))
	for _, match := range raw {
		results = append(results, findings.Finding{
			Repository:     ref.Repository,
			FilePath:       ref.Path,
			Finding:        match.Text,
			LineNumber:     match.LineNumber,
			RiskScore:      secrets.Score(match, ref.Path),
			Classification: secrets.Classify(match.Type),
			GithubURL:      ref.HTMLURL,
			RawContent:     snippet,
		})
	}
	return results
}

// finalize merges results across templates: dedup keeping first occurrence,
// stable sort by score descending, truncate to the configured maximum.
func (r *Runner) finalize(all []findings.Finding) []findings.Finding {
	unique := findings.Deduplicate(all)
	findings.SortByRiskScore(unique)
	return findings.Truncate(unique, r.cfg.MaxFindings)
}

// snippetOf returns the leading context snippet of the content, trimmed back
// so a multi-byte rune is never cut in half.
func snippetOf(content string) string {
	if len(content) <= snippetLength {
		return content
	}
	cut := content[:snippetLength]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// sleepContext pauses for d, returning early with the context error on
// cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
