package githubsearch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/leeky-osint/leeky/internal/dorker"
	"github.com/leeky-osint/leeky/internal/findings"
	"github.com/leeky-osint/leeky/pkg/shared/config"
	"github.com/leeky-osint/leeky/pkg/shared/httpclient"
)

const userAgent = "Leeky-OSINT-Platform/2.0"

// Client implements the dorker search and content-fetch capabilities on top
// of the GitHub code search and contents APIs.
type Client struct {
	search  *github.Client
	content *resty.Client
	baseURL *url.URL
	perPage int
	logger  hclog.Logger
}

// NewClient builds an authenticated client. A token is mandatory: the code
// search API rejects unauthenticated calls.
func NewClient(cfg *config.Config, logger hclog.Logger) (*Client, error) {
	if cfg.Github.Token == "" {
		return nil, fmt.Errorf("a GitHub token is required: set github.token in the config or LEEKY_GITHUB_TOKEN")
	}

	baseURL, err := url.Parse(cfg.Github.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", cfg.Github.APIBaseURL, err)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Github.Token})
	searchClient := github.NewClient(oauth2.NewClient(context.Background(), tokenSource))
	searchClient.BaseURL = baseURL
	searchClient.UserAgent = userAgent

	contentClient := httpclient.InitializeRestyClient(logger, cfg).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetHeader("User-Agent", userAgent).
		SetAuthScheme("token").
		SetAuthToken(cfg.Github.Token)

	return &Client{
		search:  searchClient,
		content: contentClient,
		baseURL: baseURL,
		perPage: cfg.Dorker.PerPage,
		logger:  logger,
	}, nil
}

// SearchCode issues one code search query, most recently indexed first,
// returning at most one page of candidate file references.
func (c *Client) SearchCode(ctx context.Context, query string) ([]findings.FileReference, error) {
	opts := &github.SearchOptions{
		Sort:        "indexed",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	result, _, err := c.search.Search.Code(ctx, query, opts)
	if err != nil {
		return nil, c.classifySearchError(query, err)
	}

	refs := make([]findings.FileReference, 0, len(result.CodeResults))
	for _, item := range result.CodeResults {
		repository := item.GetRepository().GetFullName()
		if repository == "" {
			repository = "unknown"
		}
		refs = append(refs, findings.FileReference{
			Repository: repository,
			Path:       item.GetPath(),
			HTMLURL:    item.GetHTMLURL(),
			ContentURL: c.contentURL(repository, item.GetPath(), item.GetSHA()),
		})
	}
	return refs, nil
}

// contentURL builds the contents-API locator for a search result item.
func (c *Client) contentURL(repository, path, sha string) string {
	locator := fmt.Sprintf("%srepos/%s/contents/%s", c.baseURL, repository, path)
	if sha != "" {
		locator += "?ref=" + url.QueryEscape(sha)
	}
	return locator
}

// classifySearchError maps API failures onto the runner's outcome contract.
func (c *Client) classifySearchError(query string, err error) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.logger.Warn("search rate limit hit", "reset", rateLimitErr.Rate.Reset)
		return fmt.Errorf("%w: %v", dorker.ErrRateLimited, err)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		c.logger.Warn("abuse rate detection triggered", "retry_after", abuseErr.RetryAfter)
		return fmt.Errorf("%w: %v", dorker.ErrRateLimited, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", dorker.ErrRateLimited, err)
		case http.StatusUnprocessableEntity:
			return fmt.Errorf("%w %q: %v", dorker.ErrInvalidQuery, query, err)
		}
	}

	return fmt.Errorf("code search for %q failed: %w", query, err)
}

// contentEnvelope mirrors the contents-API payload fields consumed here.
type contentEnvelope struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FetchContent retrieves and decodes the full text of a candidate file.
// Binary or otherwise undecodable payloads report ErrNotText so the runner
// skips the file.
func (c *Client) FetchContent(ctx context.Context, ref findings.FileReference) (string, error) {
	resp, err := c.content.R().SetContext(ctx).Get(ref.ContentURL)
	if err != nil {
		return "", fmt.Errorf("fetching content of %q: %w", ref.Path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetching content of %q: unexpected status %d", ref.Path, resp.StatusCode())
	}

	var envelope contentEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return "", fmt.Errorf("decoding content envelope of %q: %w", ref.Path, err)
	}

	return decodeContent(&envelope)
}

// decodeContent unwraps the base64 payload the contents API returns. GitHub
// inserts newlines into the encoded body.
func decodeContent(envelope *contentEnvelope) (string, error) {
	if envelope.Encoding != "base64" {
		return "", fmt.Errorf("%w: encoding %q", dorker.ErrNotText, envelope.Encoding)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(envelope.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("%w: %v", dorker.ErrNotText, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: binary payload", dorker.ErrNotText)
	}
	return string(decoded), nil
}
