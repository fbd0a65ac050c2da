package scan

import (
	"fmt"
	"strings"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan) error {
	if options.Domain == "" {
		return fmt.Errorf("the 'domain' flag must be specified")
	}

	domain := strings.TrimSpace(options.Domain)
	if strings.ContainsAny(domain, " \t\"") {
		return fmt.Errorf("the domain %q must not contain whitespace or quotes", options.Domain)
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("the domain %q does not look like a registrable domain", options.Domain)
	}
	options.Domain = domain

	switch options.Format {
	case "json", "sarif":
	default:
		return fmt.Errorf("unsupported output format %q, expected 'json' or 'sarif'", options.Format)
	}

	if options.Output == "" {
		return fmt.Errorf("the 'output' flag must not be empty")
	}

	return nil
}
