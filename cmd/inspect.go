package cmd

import (
	"fmt"

	"github.com/ginjaninja78/tally-receipt-report/internal/report"
	"github.com/ginjaninja78/tally-receipt-report/internal/types"
	"github.com/spf13/cobra"
)

var inspectSheet string

// inspectCmd reads a produced report back and prints its summary.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize a report workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Read(args[0], inspectSheet)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		s := rep.Summary
		fmt.Fprintf(w, "Report:      %s (sheet %q)\n", rep.Path, rep.Sheet)
		fmt.Fprintf(w, "Rows:        %d\n", s.Rows)
		fmt.Fprintf(w, "Vouchers:    %d\n", s.Vouchers)
		for _, kind := range []types.TransactionKind{types.KindParent, types.KindChild, types.KindOther} {
			fmt.Fprintf(w, "  %-10s %d\n", kind, s.ByKind[kind])
		}
		fmt.Fprintf(w, "Verified:    %d\n", s.Verified)
		fmt.Fprintf(w, "Mismatched:  %d\n", s.Mismatched)
		fmt.Fprintf(w, "Unchecked:   %d\n", s.Unchecked)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "Worksheet to read (default: first sheet)")
}
