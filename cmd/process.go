// =============================================================================
// Receipt Voucher Report - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts ledger exports
// into the report workbook.
//
// COMMAND USAGE:
//   converter process [flags]
//
// FLAGS:
//   --input           : Ledger file or directory (overrides input_path)
//   --output          : Report workbook (overrides output_file)
//   --policy          : Parent amount policy, declared or reconciled
//   --max-concurrency : Vouchers flattened at once
//   --dry-run         : Flatten and summarize without writing the report
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/tally-receipt-report/internal/config"
	"github.com/ginjaninja78/tally-receipt-report/internal/converter"
	"github.com/ginjaninja78/tally-receipt-report/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dryRun         bool
	inputPath      string
	outputFile     string
	policyName     string
	maxConcurrency int
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert ledger receipts into the XLSX report",
	Long: `The process command reads every receipt voucher from the input ledger
export (or every *.xml file of an input directory), flattens them into
report rows and writes the rows to the output workbook.

A voucher that cannot be read is logged and skipped; the remaining vouchers
are still reported. The workbook is replaced atomically, so a failed write
never leaves a partial file behind.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		applyProcessFlags(cmd, appConfig)
		if err := appConfig.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return runProcess(cmd, appConfig)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputPath, "input", "", "Ledger XML file or directory (default from config, ./Input.xml)")
	processCmd.Flags().StringVar(&outputFile, "output", "", "Report workbook path (default from config, ./Processed_file.xlsx)")
	processCmd.Flags().StringVar(&policyName, "policy", "", "Parent amount policy: declared or reconciled")
	processCmd.Flags().IntVar(&maxConcurrency, "max-concurrency", 0, "Maximum vouchers flattened at once")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Flatten and summarize without writing the report")
}

// applyProcessFlags copies explicitly set flags over the configuration.
func applyProcessFlags(cmd *cobra.Command, cfg *config.MainConfig) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath = inputPath
	}
	if flags.Changed("output") {
		cfg.OutputFile = outputFile
	}
	if flags.Changed("policy") {
		cfg.ParentAmountPolicy = policyName
	}
	if flags.Changed("max-concurrency") {
		cfg.MaxConcurrency = maxConcurrency
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command, cfg *config.MainConfig) error {
	inputs, err := utils.DiscoverInputFiles(cfg.InputPath, cfg.InputPattern)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(inputs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No ledger files found in %s.\n", cfg.InputPath)
		return nil
	}

	conv := converter.New(cfg, logger, converter.WithDryRun(dryRun))
	result, err := conv.Run(cmd.Context(), inputs)
	if result != nil {
		printSummary(cmd.OutOrStdout(), result)
	}
	return err
}

func printSummary(w io.Writer, result *converter.Result) {
	fmt.Fprintln(w, "=== Processing Complete ===")
	fmt.Fprintf(w, "Input files:     %d\n", len(result.Inputs))
	fmt.Fprintf(w, "Vouchers:        %d\n", result.Stats.VouchersFound)
	fmt.Fprintf(w, "Skipped:         %d\n", result.Stats.VouchersFailed)
	fmt.Fprintf(w, "Rows:            %d (parent %d, child %d, other %d)\n",
		len(result.Rows), result.Stats.ParentRows, result.Stats.ChildRows, result.Stats.OtherRows)
	fmt.Fprintf(w, "Time elapsed:    %s\n", result.Stats.ProcessingTime)

	switch {
	case result.Written:
		fmt.Fprintf(w, "Report:          %s\n", result.OutputFile)
	case result.DryRun:
		fmt.Fprintln(w, "Report:          not written (dry run)")
	default:
		fmt.Fprintln(w, "Report:          not written")
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(w, "  ✗ %v\n", failure)
	}
	if result.FailureLog != "" {
		fmt.Fprintf(w, "Failures have been logged to %s\n", result.FailureLog)
	}
}
