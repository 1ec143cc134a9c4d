// =============================================================================
// Receipt Voucher Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the converter CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   converter process       - Convert ledger receipts into the XLSX report
//   converter inspect FILE  - Summarize a produced report
//   converter validate      - Validate configuration and inputs
//   converter version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (voucher flattening, XML input, XLSX output)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ginjaninja78/tally-receipt-report/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
