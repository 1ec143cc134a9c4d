// =============================================================================
// Receipt Voucher Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── processCmd  (converter process)
//   ├── inspectCmd  (converter inspect FILE)
//   ├── validateCmd (converter validate)
//   └── versionCmd  (converter version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the main configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ginjaninja78/tally-receipt-report/internal/config"
	"github.com/ginjaninja78/tally-receipt-report/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are initialized by the root command before any
// subcommand runs.
var (
	appConfig *config.MainConfig
	logger    = zap.NewNop()
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Receipt voucher report - Flatten ledger receipts into an audit workbook",
	Long: `converter reads receipt vouchers from a ledger XML export and writes a flat,
12-column XLSX report for auditing. Every voucher becomes one Parent row
followed by a Child row per bill allocation and an Other row per cash or
bank entry. The Parent row carries a verification flag comparing the
voucher amount with the sum of its bill allocations.

Example Usage:
  converter process                          # Input.xml -> Processed_file.xlsx
  converter process --input ./exports        # Every *.xml file in a directory
  converter process --policy reconciled      # Report the reconciled total
  converter inspect Processed_file.xlsx      # Summarize a produced report`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and prints any error. It is called by
// main.main(), which owns the exit code.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initialize loads the configuration and builds the logger.
//
// A missing config.yaml falls back to the built-in defaults. A file named
// explicitly with --config must exist.
func initialize(cmd *cobra.Command) error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		explicit := cmd.Flags().Changed("config")
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load main config: %w", err)
		}
		cfg = config.Default()
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	built, _, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	appConfig = cfg
	logger = built
	return nil
}
