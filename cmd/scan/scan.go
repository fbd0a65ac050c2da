package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leeky-osint/leeky/internal/dorker"
	"github.com/leeky-osint/leeky/internal/findings"
	"github.com/leeky-osint/leeky/internal/githubsearch"
	sarifexport "github.com/leeky-osint/leeky/internal/sarif"
	"github.com/leeky-osint/leeky/pkg/shared/config"
	"github.com/leeky-osint/leeky/pkg/shared/files"
	"github.com/leeky-osint/leeky/pkg/shared/logger"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	Domain string
	Output string
	Format string
	Token  string
}

// Scan lifecycle statuses carried in the result envelope.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ScanReport is the envelope written next to the findings of one dork
// execution.
type ScanReport struct {
	ScanID        string             `json:"scan_id"`
	Domain        string             `json:"domain"`
	Status        string             `json:"status"`
	RiskScore     float64            `json:"risk_score"`
	FindingsCount int                `json:"findings_count"`
	CreatedAt     time.Time          `json:"created_at"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	Findings      []findings.Finding `json:"findings"`
}

var (
	AppConfig        *config.Config
	scanOptions      RunOptionsScan
	exampleScanUsage = `  # Scanning a domain with the token taken from the config or LEEKY_GITHUB_TOKEN
  leeky scan --domain example.com

  # Scanning a domain with an explicit token and writing results to a directory
  leeky scan --domain example.com --token ghp_xxxx --output /path/to/results

  # Writing the findings as a SARIF report
  leeky scan --domain example.com --format sarif --output /path/to/results/example.sarif`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan --domain/-d DOMAIN [--token/-t TOKEN] [--format/-f json|sarif] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Runs the GitHub dork set for a domain and reports scored secret-leak findings",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.Domain, "domain", "d", "", "target domain to scan for")
	ScanCmd.Flags().StringVarP(&scanOptions.Token, "token", "t", "", "GitHub token (overrides config and environment)")
	ScanCmd.Flags().StringVarP(&scanOptions.Format, "format", "f", "json", "output format: json or sarif")
	ScanCmd.Flags().StringVarP(&scanOptions.Output, "output", "o", ".", "output file or directory for the results")
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(&scanOptions); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	if scanOptions.Token != "" {
		AppConfig.Github.Token = scanOptions.Token
	}

	client, err := githubsearch.NewClient(AppConfig, logger)
	if err != nil {
		logger.Error("failed to initialize the GitHub client", "error", err)
		return err
	}

	// The scan is cancellable between queries: an interrupt stops the run
	// and the findings collected so far are still written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := &ScanReport{
		ScanID:    uuid.New().String(),
		Domain:    scanOptions.Domain,
		Status:    StatusRunning,
		CreatedAt: time.Now().UTC(),
	}
	logger.Info("starting scan", "scan_id", report.ScanID, "domain", report.Domain)

	runner := dorker.New(client, client, AppConfig.Dorker, logger)
	results, runErr := runner.Run(ctx, scanOptions.Domain)
	completeReport(report, results, runErr)

	outputPath, err := writeReport(report, &scanOptions)
	if err != nil {
		logger.Error("failed to write scan results", "error", err)
		return err
	}

	logger.Info("scan finished",
		"scan_id", report.ScanID,
		"status", report.Status,
		"findings", report.FindingsCount,
		"risk_score", report.RiskScore,
		"output", outputPath,
	)
	return nil
}

// completeReport fills the envelope from the run outcome. Cancellation is a
// regular terminal status, not a failure: partial results stay recoverable.
func completeReport(report *ScanReport, results []findings.Finding, runErr error) {
	now := time.Now().UTC()
	report.CompletedAt = &now
	if results == nil {
		results = []findings.Finding{}
	}
	report.Findings = results
	report.FindingsCount = len(results)
	report.RiskScore = findings.MaxRiskScore(results)

	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		report.Status = StatusCancelled
		return
	}
	report.Status = StatusCompleted
}

// writeReport renders the envelope in the requested format and writes it to
// the resolved output path.
func writeReport(report *ScanReport, options *RunOptionsScan) (string, error) {
	nameTemplate := fmt.Sprintf("leeky_scan_%s.%s", sanitizeDomain(report.Domain), options.Format)
	outputPath, folder, err := files.DetermineFileFullPath(options.Output, nameTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path %q: %w", options.Output, err)
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	if options.Format == "sarif" {
		sarifReport, err := sarifexport.FromFindings(report.Domain, report.Findings)
		if err != nil {
			return "", err
		}
		return outputPath, sarifReport.WriteFile(outputPath)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scan report: %w", err)
	}
	return outputPath, files.WriteJsonFile(outputPath, data)
}

// sanitizeDomain makes a domain safe for use inside a file name.
func sanitizeDomain(domain string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, domain)
}
