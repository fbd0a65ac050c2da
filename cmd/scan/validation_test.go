package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScanArgs(t *testing.T) {
	testCases := []struct {
		name    string
		options RunOptionsScan
		wantErr bool
	}{
		{
			name:    "valid domain with defaults",
			options: RunOptionsScan{Domain: "example.com", Format: "json", Output: "."},
			wantErr: false,
		},
		{
			name:    "sarif format accepted",
			options: RunOptionsScan{Domain: "example.com", Format: "sarif", Output: "."},
			wantErr: false,
		},
		{
			name:    "missing domain",
			options: RunOptionsScan{Format: "json", Output: "."},
			wantErr: true,
		},
		{
			name:    "domain with whitespace",
			options: RunOptionsScan{Domain: "exa mple.com", Format: "json", Output: "."},
			wantErr: true,
		},
		{
			name:    "domain with embedded quote",
			options: RunOptionsScan{Domain: `example.com"`, Format: "json", Output: "."},
			wantErr: true,
		},
		{
			name:    "domain without a dot",
			options: RunOptionsScan{Domain: "localhost", Format: "json", Output: "."},
			wantErr: true,
		},
		{
			name:    "unsupported format",
			options: RunOptionsScan{Domain: "example.com", Format: "xml", Output: "."},
			wantErr: true,
		},
		{
			name:    "empty output",
			options: RunOptionsScan{Domain: "example.com", Format: "json", Output: ""},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateScanArgs(&tc.options)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateScanArgs_TrimsDomain(t *testing.T) {
	options := RunOptionsScan{Domain: "  example.com", Format: "json", Output: "."}
	assert.NoError(t, validateScanArgs(&options))
	assert.Equal(t, "example.com", options.Domain)
}

func TestSanitizeDomain(t *testing.T) {
	assert.Equal(t, "example.com", sanitizeDomain("example.com"))
	assert.Equal(t, "sub.example-site.com", sanitizeDomain("sub.example-site.com"))
	assert.Equal(t, "example.com_8080", sanitizeDomain("example.com:8080"))
}
