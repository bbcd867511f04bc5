// pixelquest runs the Pixel Quest desktop client.
//
// Usage:
//
//	pixelquest [run]   - Open the game window (default)
//	pixelquest config  - Print the effective configuration as YAML
//
// Global flags:
//
//	--config <path>       - Config file (default: ~/.pixelquest/config.yaml, then ./configs/pixelquest.yaml)
//	--log-level <level>   - error, warn, info, debug or trace
package main

import (
	"fmt"
	"os"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfigPath string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelquest",
	Short: "Pixel Quest - a small top-down adventure",
	Long: `Pixel Quest opens the game window and, optionally, a local status API
for inspecting and driving the running game.

Available commands:
  run      - Open the game window (default)
  config   - Print the effective configuration

Examples:
  pixelquest
  pixelquest run --debug --status-port 8089
  pixelquest run --database-url sqlite://$HOME/.pixelquest/saves.db
  pixelquest config --config ./configs/pixelquest.yaml`,
	PersistentPreRunE: setupLogging,
	Run:               runGame,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level")

	addRunFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	parsedLogLevel, err := log.ParseLogLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Debug("Log level set to %s", parsedLogLevel)
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %v", err)
	}
	return cfg, nil
}
