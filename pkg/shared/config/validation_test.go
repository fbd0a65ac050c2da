package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig_AppliesDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Github.Token = "sometoken"

	err := ValidateConfig(cfg)
	assert.NoError(t, err)

	assert.Equal(t, "https://api.github.com/", cfg.Github.APIBaseURL)
	assert.Equal(t, 15, cfg.Dorker.PerPage)
	assert.Equal(t, 20, cfg.Dorker.MaxFindings)
	assert.Equal(t, 5, cfg.Dorker.PerFileLimit)
	assert.Equal(t, 2*time.Second, cfg.Dorker.FetchDelay)
	assert.Equal(t, 3*time.Second, cfg.Dorker.TemplateBaseDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Dorker.TemplateStepDelay)
}

func TestValidateConfig_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Dorker.PerPage = 5
	cfg.Dorker.MaxFindings = 10
	cfg.Dorker.FetchDelay = 4 * time.Second

	err := ValidateConfig(cfg)
	assert.NoError(t, err)

	assert.Equal(t, 5, cfg.Dorker.PerPage)
	assert.Equal(t, 10, cfg.Dorker.MaxFindings)
	assert.Equal(t, 4*time.Second, cfg.Dorker.FetchDelay)
}

func TestValidateDorkerConfig_RejectsOversizedPage(t *testing.T) {
	cfg := Dorker{PerPage: 50}
	assert.Error(t, ValidateDorkerConfig(&cfg))
}

func TestValidateGithubConfig_TokenFromEnvironment(t *testing.T) {
	t.Setenv("LEEKY_GITHUB_TOKEN", "env-token")

	cfg := Github{}
	assert.NoError(t, ValidateGithubConfig(&cfg))
	assert.Equal(t, "env-token", cfg.Token)
}

func TestValidateGithubConfig_RejectsBadScheme(t *testing.T) {
	cfg := Github{APIBaseURL: "ftp://api.github.com"}
	assert.Error(t, ValidateGithubConfig(&cfg))
}
