package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
)

var (
	// Command-line flags
	configFiles []string // Multiple -c flags supported, later files override earlier ones
	serverPort  int
	serverHost  string
	verbose     bool

	// Global state
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "finhealth",
	Short: "Corporate financial health analyzer",
	Long: `FinHealth scores listed companies for default risk using the Altman Z-Score,
the Ohlson O-Score and the Merton structural model, and serves the results on a web dashboard.`,
	SilenceUsage: true,
	// Without a subcommand the dashboard is served
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times)")
	rootCmd.PersistentFlags().IntVarP(&serverPort, "port", "p", 0, "Server port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&serverHost, "host", "", "Server host (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to the console for CLI commands")

	rootCmd.AddCommand(serveCmd, analyzeCmd, searchCmd, versionCmd)
}

func main() {
	common.InstallCrashHandler("./logs")
	defer common.RecoverWithCrashFile()

	common.LoadVersionFromFile()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration in order: defaults -> files -> .env -> env -> flags,
// then initializes the logger. console controls whether logs go to stdout.
func loadConfig(console bool) error {
	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("finhealth.toml"); err == nil {
			configFiles = append(configFiles, "finhealth.toml")
		} else if _, err := os.Stat("deployments/local/finhealth.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/finhealth.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		// Logger is not configured yet
		common.GetLogger().Error().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	common.ApplyFlagOverrides(config, serverPort, serverHost)

	if err := config.Validate(); err != nil {
		common.GetLogger().Error().Err(err).Msg("Configuration rejected")
		return err
	}

	if !console {
		// Keep stdout clean for command output
		config.Logging.Output = []string{"file"}
	}

	logger = common.InitLogger(config)

	if dir, err := common.LogDir(config); err == nil {
		common.InstallCrashHandler(dir)
	}

	logger.Debug().
		Strs("config_files", configFiles).
		Str("environment", config.Environment).
		Str("log_level", config.Logging.Level).
		Str("search_provider", config.Search.Provider).
		Bool("cache_enabled", config.Cache.Enabled).
		Msg("Resolved configuration")

	return nil
}
