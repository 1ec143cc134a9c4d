// =============================================================================
// Receipt Voucher Report - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. It turns one or more ledger
// exports into a single report workbook.
//
// CONVERSION PIPELINE:
//   1. Parse each ledger export
//   2. Select the vouchers of the configured type
//   3. Flatten every voucher into report rows (concurrently)
//   4. Concatenate the rows in input order
//   5. Write the report workbook
//   6. Write the failure log, if configured
//
// CONCURRENCY:
//   Vouchers are flattened in parallel up to max_concurrency. Each voucher
//   writes only to its own slot, so output order never depends on
//   scheduling.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ginjaninja78/tally-receipt-report/internal/config"
	"github.com/ginjaninja78/tally-receipt-report/internal/ledgerxml"
	"github.com/ginjaninja78/tally-receipt-report/internal/report"
	"github.com/ginjaninja78/tally-receipt-report/internal/types"
	"github.com/ginjaninja78/tally-receipt-report/internal/voucher"
	"github.com/ginjaninja78/tally-receipt-report/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoInputs is returned by Run when it is given no input files.
var ErrNoInputs = errors.New("no input files")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// Inputs are the ledger files that were read.
	Inputs []string

	// OutputFile is the report path. It is set even when nothing was
	// written; check Written.
	OutputFile string

	// Written is true when the report was saved.
	Written bool

	// DryRun is true when writing was skipped on request.
	DryRun bool

	// Rows holds every produced row in output order.
	Rows []types.Row

	// Failures lists the inputs and vouchers that were skipped.
	Failures []Failure

	// FailureLog is the failure log path, if one was written.
	FailureLog string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// FilesProcessed is the number of inputs parsed successfully.
	FilesProcessed int

	// VouchersFound is the number of vouchers of the configured type.
	VouchersFound int

	// VouchersFailed is the number of vouchers skipped because of an error.
	VouchersFailed int

	ParentRows int
	ChildRows  int
	OtherRows  int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// Failure records one input or voucher that could not be processed.
type Failure struct {
	// InputFile is the ledger file the failure belongs to.
	InputFile string

	// Index is the voucher position within InputFile, or -1 when the whole
	// input failed.
	Index int

	// Voucher is the voucher number when it could be read.
	Voucher string

	Err error
}

func (f Failure) Error() string {
	if f.Index < 0 {
		return fmt.Sprintf("%s: %v", f.InputFile, f.Err)
	}
	return fmt.Sprintf("%s: voucher #%d: %v", f.InputFile, f.Index+1, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the conversion pipeline. It is safe to reuse across runs.
type Converter struct {
	cfg       *config.MainConfig
	flattener *voucher.Flattener
	writer    *report.Writer
	logger    *zap.Logger
	dryRun    bool
}

// Option customizes a Converter.
type Option func(*Converter)

// WithDryRun makes Run flatten and report without writing the workbook.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// New creates a Converter from a validated configuration.
func New(cfg *config.MainConfig, logger *zap.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Converter{
		cfg:       cfg,
		flattener: voucher.NewFlattener(cfg.Policy(), voucher.DefaultVoucherLabel),
		writer:    report.NewWriter(cfg.SheetName, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline over the given inputs.
//
// RETURNS:
//   - The Result, also when an error is returned.
//   - A *report.SinkWriteError when the workbook cannot be written.
//   - The first failure when stop_on_error is set, or when no input could
//     be parsed at all.
//   - The context error when ctx is cancelled.
//
// Voucher failures are otherwise recorded in Result.Failures and do not
// stop the run.
func (c *Converter) Run(ctx context.Context, inputs []string) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		Inputs:     inputs,
		OutputFile: c.cfg.OutputFile,
		DryRun:     c.dryRun,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	if len(inputs) == 0 {
		return result, ErrNoInputs
	}

	c.logger.Info("starting run",
		zap.Int("inputs", len(inputs)),
		zap.String("policy", string(c.flattener.Policy())),
		zap.Int("max_concurrency", c.cfg.MaxConcurrency),
	)

	// =========================================================================
	// STEP 1: FLATTEN EVERY INPUT
	// =========================================================================

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rows, failures, err := c.processInput(ctx, input, result)
		result.Rows = append(result.Rows, rows...)
		result.Failures = append(result.Failures, failures...)
		if err != nil {
			c.writeFailureLog(result)
			return result, err
		}
	}

	if result.Stats.FilesProcessed == 0 {
		c.writeFailureLog(result)
		return result, fmt.Errorf("no input could be read: %w", result.Failures[0])
	}

	c.countRows(result)

	// =========================================================================
	// STEP 2: WRITE THE REPORT
	// =========================================================================

	switch {
	case len(result.Rows) == 0:
		c.logger.Info("nothing to save", zap.String("output", c.cfg.OutputFile))

	case c.dryRun:
		c.logger.Info("dry run, report not written",
			zap.String("output", c.cfg.OutputFile),
			zap.Int("rows", len(result.Rows)),
		)

	default:
		saved, err := c.writer.Save(c.cfg.OutputFile, result.Rows)
		if err != nil {
			c.logger.Error("failed to save report", zap.Error(err))
			c.writeFailureLog(result)
			return result, err
		}
		result.Written = saved.Written
		c.logger.Info("report saved",
			zap.String("output", saved.Path),
			zap.Int("rows", saved.Rows),
		)
	}

	c.writeFailureLog(result)
	return result, nil
}

// processInput parses one ledger file and flattens its vouchers. A file
// that cannot be parsed is recorded as a failure, not returned, unless
// stop_on_error is set.
func (c *Converter) processInput(ctx context.Context, input string, result *Result) ([]types.Row, []Failure, error) {
	doc, err := ledgerxml.ReadFile(input)
	if err != nil {
		failure := Failure{InputFile: input, Index: -1, Err: err}
		c.logger.Error("failed to read input", zap.String("input", input), zap.Error(err))
		if c.cfg.StopOnError {
			return nil, []Failure{failure}, failure
		}
		return nil, []Failure{failure}, nil
	}

	nodes, err := doc.Vouchers(c.cfg.VoucherType)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", input, err)
	}

	result.Stats.FilesProcessed++
	result.Stats.VouchersFound += len(nodes)
	c.logger.Debug("vouchers selected",
		zap.String("input", input),
		zap.String("voucher_type", c.cfg.VoucherType),
		zap.Int("count", len(nodes)),
	)

	rows, failures, err := c.FlattenAll(ctx, input, nodes)
	result.Stats.VouchersFailed += len(failures)
	return rows, failures, err
}

// FlattenAll flattens nodes concurrently and returns their rows in node
// order. input only labels failures and log entries.
//
// A failing voucher is logged and skipped. With stop_on_error the first
// failure cancels the remaining vouchers and is returned.
func (c *Converter) FlattenAll(ctx context.Context, input string, nodes []voucher.Node) ([]types.Row, []Failure, error) {
	slots := make([][]types.Row, len(nodes))
	errs := make([]error, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrency)

	for i, node := range nodes {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rows, err := c.flattener.FlattenNode(node)
			if err != nil {
				errs[i] = err
				if c.cfg.StopOnError {
					return Failure{InputFile: input, Index: i, Voucher: voucher.VoucherOf(err), Err: err}
				}
				return nil
			}

			slots[i] = rows
			return nil
		})
	}

	waitErr := g.Wait()

	var failures []Failure
	for i, err := range errs {
		if err == nil {
			continue
		}
		failure := Failure{InputFile: input, Index: i, Voucher: voucher.VoucherOf(err), Err: err}
		failures = append(failures, failure)
		c.logger.Warn("voucher skipped",
			zap.String("input", input),
			zap.Int("index", i),
			zap.String("voucher", failure.Voucher),
			zap.Error(err),
		)
	}

	if waitErr != nil {
		return nil, failures, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, failures, err
	}

	total := 0
	for _, rows := range slots {
		total += len(rows)
	}

	out := make([]types.Row, 0, total)
	for _, rows := range slots {
		out = append(out, rows...)
	}

	return out, failures, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (c *Converter) countRows(result *Result) {
	for _, row := range result.Rows {
		switch row.Kind {
		case types.KindParent:
			result.Stats.ParentRows++
		case types.KindChild:
			result.Stats.ChildRows++
		case types.KindOther:
			result.Stats.OtherRows++
		}
	}
}

// writeFailureLog writes the failure log when a directory is configured.
// Errors are logged; the run result is unaffected.
func (c *Converter) writeFailureLog(result *Result) {
	if c.cfg.FailureLogDir == "" || len(result.Failures) == 0 || result.FailureLog != "" {
		return
	}

	entries := make([]utils.FailureLogEntry, len(result.Failures))
	now := time.Now()
	for i, f := range result.Failures {
		entries[i] = utils.FailureLogEntry{
			Timestamp:    now,
			InputFile:    f.InputFile,
			Voucher:      f.Voucher,
			Index:        f.Index,
			ErrorType:    errorType(f.Err),
			ErrorMessage: f.Err.Error(),
		}
	}

	path, err := utils.WriteFailureLog(entries, c.cfg.FailureLogDir)
	if err != nil {
		c.logger.Error("failed to write failure log", zap.Error(err))
		return
	}

	result.FailureLog = path
	c.logger.Info("failure log written", zap.String("path", path), zap.Int("failures", len(entries)))
}

// errorType names the error kind for the failure log.
func errorType(err error) string {
	var (
		missing *voucher.MissingFieldError
		date    *voucher.DateFormatError
		amount  *voucher.AmountFormatError
	)

	switch {
	case errors.As(err, &missing):
		return "MissingFieldError"
	case errors.As(err, &date):
		return "DateFormatError"
	case errors.As(err, &amount):
		return "AmountFormatError"
	default:
		return "InputError"
	}
}
