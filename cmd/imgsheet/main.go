// Package main provides the CLI entry point for imgsheet.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/imgsheet-go/internal/config"
	"github.com/ukaji3/imgsheet-go/internal/observability"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imgsheet",
		Short: "Export labeled images to Excel worksheets",
		Long: `imgsheet places groups of labeled images on the worksheets of an xlsx
document, one worksheet per group, with optional numbering and captions.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	// Logging flags only override config and env when explicitly set.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.imgsheet.yaml or $HOME/.imgsheet.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newExportCmd(), newInspectCmd(), newServeCmd(), newThemeCmd())
	return rootCmd
}

// setup loads configuration and installs the logger.
// Priority: CLI flags, then IMGSHEET_* env, then config file, then defaults.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		loaded.Logging.Level = strings.ToLower(level)
	}
	if flags.Changed("log-format") {
		format, _ := flags.GetString("log-format")
		loaded.Logging.Format = strings.ToLower(format)
	}
	if loaded.Logging.Level == "warning" {
		loaded.Logging.Level = "warn"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("validating flags: %w", err)
	}

	cfg = loaded
	logger = observability.NewLogger(cfg.Logging)
	slog.SetDefault(logger)
	return nil
}
