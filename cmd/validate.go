package cmd

import (
	"fmt"

	"github.com/ginjaninja78/tally-receipt-report/internal/ledgerxml"
	"github.com/ginjaninja78/tally-receipt-report/pkg/utils"
	"github.com/spf13/cobra"
)

// validateCmd checks the configuration and that every input parses, without
// flattening or writing anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and input files without processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		inputs, err := utils.DiscoverInputFiles(appConfig.InputPath, appConfig.InputPattern)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}

		w := cmd.OutOrStdout()
		var failed int
		for _, input := range inputs {
			doc, err := ledgerxml.ReadFile(input)
			if err != nil {
				failed++
				fmt.Fprintf(w, "  ✗ %v\n", err)
				continue
			}

			nodes, err := doc.Vouchers(appConfig.VoucherType)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  ✓ %s: %d %s voucher(s)\n", input, len(nodes), appConfig.VoucherType)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d input file(s) could not be read", failed, len(inputs))
		}
		fmt.Fprintln(w, "Configuration and inputs are valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
