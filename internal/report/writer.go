// =============================================================================
// Receipt Voucher Report - XLSX Report Sink
// =============================================================================
//
// This module persists flattened rows as a single-sheet XLSX workbook.
//
// OUTPUT STRUCTURE:
//   | Date       | Transaction Type | Vch No. | Ref No | ... | Amount Verified |
//   |------------|------------------|---------|--------|-----|-----------------|
//   | 15-01-2023 | Parent           | 101     | NA     | ... | Yes             |
//   | 15-01-2023 | Child            | 101     | INV1   | ... | NA              |
//
// The header row is bold and frozen. Rows are streamed, so memory use does
// not grow with cell formatting state.
//
// WRITE STRATEGY:
//   The workbook is saved to a temporary file beside the destination and
//   renamed over it. On any failure the temporary file is removed and the
//   destination is left untouched.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ginjaninja78/tally-receipt-report/internal/types"
	"github.com/ginjaninja78/tally-receipt-report/pkg/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DefaultSheetName is the worksheet name used when none is configured.
const DefaultSheetName = "Sample"

// defaultColumnWidth is applied to every report column.
const defaultColumnWidth = 16

// SinkWriteError reports a failure to persist the report.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// SaveResult describes the outcome of a Save call.
type SaveResult struct {
	// Path is the destination file.
	Path string

	// Rows is the number of data rows written, excluding the header.
	Rows int

	// Written is false when there was nothing to save.
	Written bool
}

// Writer writes report workbooks.
type Writer struct {
	sheetName string
	logger    *zap.Logger
}

// NewWriter creates a Writer. An empty sheet name falls back to
// DefaultSheetName; a nil logger discards output.
func NewWriter(sheetName string, logger *zap.Logger) *Writer {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{sheetName: sheetName, logger: logger}
}

// Save writes the header and rows to path.
//
// RETURNS:
//   - A SaveResult with Written=false and no error when rows is empty.
//   - A *SinkWriteError when the workbook cannot be written or moved into
//     place.
func (w *Writer) Save(path string, rows []types.Row) (SaveResult, error) {
	if len(rows) == 0 {
		return SaveResult{Path: path}, nil
	}

	tmp := utils.TempPathFor(path)
	w.logger.Debug("writing report",
		zap.String("path", path),
		zap.String("temp", tmp),
		zap.Int("rows", len(rows)),
	)

	if err := w.write(tmp, rows); err != nil {
		os.Remove(tmp)
		return SaveResult{}, &SinkWriteError{Path: path, Err: err}
	}

	if err := utils.ReplaceFile(tmp, path); err != nil {
		os.Remove(tmp)
		return SaveResult{}, &SinkWriteError{Path: path, Err: err}
	}

	return SaveResult{Path: path, Rows: len(rows), Written: true}, nil
}

// write streams the workbook to path.
func (w *Writer) write(path string, rows []types.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", w.sheetName, err)
	}

	sw, err := f.NewStreamWriter(w.sheetName)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// Panes and widths must be set before the first row.
	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if err := sw.SetColWidth(1, types.ColumnCount, defaultColumnWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, len(types.Header))
	for i, title := range types.Header {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: title}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, rowCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// rowCells converts a row to cell values. A voucher number written in
// canonical integer form becomes a numeric cell; every other value is text.
func rowCells(row types.Row) []interface{} {
	values := row.Values()
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if n, err := strconv.ParseInt(row.VoucherNumber, 10, 64); err == nil && strconv.FormatInt(n, 10) == row.VoucherNumber {
		cells[2] = n
	}

	return cells
}
