package config

import (
	"fmt"
	"net/url"
	"os"
)

// ValidateConfig checks if the global configurations have valid values and
// resolves environment fallbacks.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateGithubConfig(&cfg.Github); err != nil {
		return fmt.Errorf("YAML global config: github directive is invalid: %w", err)
	}
	if err := ValidateDorkerConfig(&cfg.Dorker); err != nil {
		return fmt.Errorf("YAML global config: dorker directive is invalid: %w", err)
	}
	return nil
}

// ValidateGithubConfig resolves the token from the environment if the config
// file leaves it empty and checks the API base URL.
func ValidateGithubConfig(cfg *Github) error {
	if cfg.Token == "" {
		cfg.Token = os.Getenv("LEEKY_GITHUB_TOKEN")
	}
	cfg.APIBaseURL = SetThen(cfg.APIBaseURL, DefaultGithubConfig().APIBaseURL)

	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api_base_url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api_base_url must use http or https, got %q", cfg.APIBaseURL)
	}
	return nil
}

// ValidateDorkerConfig applies defaults and rejects values outside the
// search API budget.
func ValidateDorkerConfig(cfg *Dorker) error {
	defaults := DefaultDorkerConfig()

	cfg.PerPage = SetThen(cfg.PerPage, defaults.PerPage)
	cfg.MaxFindings = SetThen(cfg.MaxFindings, defaults.MaxFindings)
	cfg.PerFileLimit = SetThen(cfg.PerFileLimit, defaults.PerFileLimit)
	cfg.FetchDelay = SetThen(cfg.FetchDelay, defaults.FetchDelay)
	cfg.TemplateBaseDelay = SetThen(cfg.TemplateBaseDelay, defaults.TemplateBaseDelay)
	cfg.TemplateStepDelay = SetThen(cfg.TemplateStepDelay, defaults.TemplateStepDelay)

	if cfg.PerPage < 1 || cfg.PerPage > 15 {
		return fmt.Errorf("per_page must be between 1 and 15, got %d", cfg.PerPage)
	}
	if cfg.MaxFindings < 1 {
		return fmt.Errorf("max_findings must be a positive integer, got %d", cfg.MaxFindings)
	}
	if cfg.PerFileLimit < 1 {
		return fmt.Errorf("per_file_limit must be a positive integer, got %d", cfg.PerFileLimit)
	}
	if cfg.FetchDelay < 0 || cfg.TemplateBaseDelay < 0 || cfg.TemplateStepDelay < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}
	return nil
}
