// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/ieee-sl/relief-ledger/internal/config"
	"github.com/ieee-sl/relief-ledger/internal/container"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	MockData   bool
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for the running command
	AppContainer *container.Container

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "relief-ledger",
		Short: "Publish a disaster-relief fund ledger and impact stories from spreadsheet feeds.",
		Long: `relief-ledger reads the published CSV exports of the relief campaign's
spreadsheets (a transaction ledger and a list of impact stories), validates and
normalizes them, and serves the totals, expense breakdown, ledger and stories
over a read-only JSON API or as command-line reports.`,
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to release resources")
				}
			}
		},
	}
)

// Init registers the persistent flags on the root command
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.relief-ledger, .relief-ledger or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.MockData, "mock", false, "Serve the built-in demo data instead of fetching the feeds")
}

func initApp(cmd *cobra.Command, args []string) error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfigFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	Log = config.NewLogger(cfg)

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.MockData {
		cfg.Feeds.UseMockData = true
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the application container
func GetContainer() *container.Container {
	return AppContainer
}
