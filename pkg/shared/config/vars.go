package config

import (
	"time"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HttpClient HttpClient `yaml:"http_client"`
	Github     Github     `yaml:"github"`
	Dorker     Dorker     `yaml:"dorker"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type HttpClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Github holds access settings for the GitHub search and contents APIs.
type Github struct {
	Token      string `yaml:"token"`
	APIBaseURL string `yaml:"api_base_url"`
}

// Dorker holds tuning knobs for the dork runner and aggregator.
type Dorker struct {
	PerPage           int           `yaml:"per_page"`
	MaxFindings       int           `yaml:"max_findings"`
	PerFileLimit      int           `yaml:"per_file_limit"`
	FetchDelay        time.Duration `yaml:"fetch_delay"`
	TemplateBaseDelay time.Duration `yaml:"template_base_delay"`
	TemplateStepDelay time.Duration `yaml:"template_step_delay"`
}
