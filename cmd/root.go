package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leeky-osint/leeky/cmd/scan"
	"github.com/leeky-osint/leeky/cmd/version"
	"github.com/leeky-osint/leeky/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "leeky [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Leeky is an OSINT scanner for secret leaks tied to a domain.",
		Long: `Leeky runs crafted GitHub code search queries (dorks) for a target domain,
	extracts credible secret and credential references from the matched files,
	and reports them scored, classified and ranked.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Printf("initializing config file failed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	scan.Init(AppConfig)
}
