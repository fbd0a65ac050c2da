package githubsearch

import (
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/leeky-osint/leeky/internal/dorker"
	"github.com/leeky-osint/leeky/pkg/shared/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Github = config.Github{Token: "token-under-test", APIBaseURL: "https://api.github.com/"}
	cfg.Dorker = config.DefaultDorkerConfig()
	return cfg
}

func TestNewClient_RequiresToken(t *testing.T) {
	cfg := testConfig()
	cfg.Github.Token = ""

	_, err := NewClient(cfg, hclog.NewNullLogger())
	assert.Error(t, err)
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.Github.APIBaseURL = "https://ghe.example.org/api/v3"

	client, err := NewClient(cfg, hclog.NewNullLogger())
	assert.NoError(t, err)
	assert.Equal(t, "/api/v3/", client.baseURL.Path)
}

func TestContentURL(t *testing.T) {
	client, err := NewClient(testConfig(), hclog.NewNullLogger())
	assert.NoError(t, err)

	locator := client.contentURL("org/repo", "conf/.env", "abc123")
	assert.Equal(t, "https://api.github.com/repos/org/repo/contents/conf/.env?ref=abc123", locator)

	locator = client.contentURL("org/repo", "conf/.env", "")
	assert.Equal(t, "https://api.github.com/repos/org/repo/contents/conf/.env", locator)
}

func TestClassifySearchError(t *testing.T) {
	client := &Client{logger: hclog.NewNullLogger()}

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "primary rate limit",
			err:      &github.RateLimitError{},
			expected: dorker.ErrRateLimited,
		},
		{
			name:     "abuse rate detection",
			err:      &github.AbuseRateLimitError{},
			expected: dorker.ErrRateLimited,
		},
		{
			name:     "forbidden response",
			err:      &github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusForbidden}},
			expected: dorker.ErrRateLimited,
		},
		{
			name:     "unprocessable query",
			err:      &github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusUnprocessableEntity}},
			expected: dorker.ErrInvalidQuery,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classified := client.classifySearchError(`filename:.env "example.com"`, tc.err)
			assert.True(t, errors.Is(classified, tc.expected), "got %v", classified)
		})
	}

	plain := client.classifySearchError("q", errors.New("connection refused"))
	assert.False(t, errors.Is(plain, dorker.ErrRateLimited))
	assert.False(t, errors.Is(plain, dorker.ErrInvalidQuery))
}

func TestDecodeContent(t *testing.T) {
	// GitHub wraps the base64 body with newlines
	encoded := base64.StdEncoding.EncodeToString([]byte("DATABASE_URL=postgres://u:p@db/prod"))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	text, err := decodeContent(&contentEnvelope{Content: wrapped, Encoding: "base64"})
	assert.NoError(t, err)
	assert.Equal(t, "DATABASE_URL=postgres://u:p@db/prod", text)
}

func TestDecodeContent_Undecodable(t *testing.T) {
	testCases := []struct {
		name     string
		envelope contentEnvelope
	}{
		{"unexpected encoding", contentEnvelope{Content: "plain text", Encoding: "utf-8"}},
		{"invalid base64", contentEnvelope{Content: "!!! not base64 !!!", Encoding: "base64"}},
		{"binary payload", contentEnvelope{
			Content:  base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01}),
			Encoding: "base64",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeContent(&tc.envelope)
			assert.True(t, errors.Is(err, dorker.ErrNotText), "got %v", err)
		})
	}
}
