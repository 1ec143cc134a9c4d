package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/tally-receipt-report/internal/types"
	"github.com/xuri/excelize/v2"
)

// ErrUnexpectedHeader is returned when a workbook's first row is not the
// report header.
var ErrUnexpectedHeader = errors.New("unexpected report header")

// Report is a workbook read back into rows.
type Report struct {
	Path    string
	Sheet   string
	Rows    []types.Row
	Summary Summary
}

// Summary counts report rows by kind and Parent rows by verification flag.
type Summary struct {
	Rows   int
	ByKind map[types.TransactionKind]int

	// Vouchers is the number of Parent rows.
	Vouchers int

	Verified   int
	Mismatched int
	Unchecked  int
}

// Summarize builds the Summary for rows.
func Summarize(rows []types.Row) Summary {
	s := Summary{
		Rows:   len(rows),
		ByKind: make(map[types.TransactionKind]int),
	}

	for _, row := range rows {
		s.ByKind[row.Kind]++
		if row.Kind != types.KindParent {
			continue
		}

		s.Vouchers++
		switch row.Verified {
		case "Yes":
			s.Verified++
		case "No":
			s.Mismatched++
		default:
			s.Unchecked++
		}
	}

	return s
}

// Read opens a report workbook and returns its rows.
//
// PARAMETERS:
//   - path: The workbook to read.
//   - sheet: The worksheet name. If empty, the first sheet is used.
//
// RETURNS:
//   - The rows and their summary.
//   - ErrUnexpectedHeader (wrapped) when the header does not match.
func Read(path, sheet string) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("report file has no sheets")
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrUnexpectedHeader, sheet)
	}

	if err := checkHeader(raw[0]); err != nil {
		return nil, err
	}

	rows := make([]types.Row, 0, len(raw)-1)
	for _, values := range raw[1:] {
		if isRowEmpty(values) {
			continue
		}
		rows = append(rows, types.RowFromValues(values))
	}

	return &Report{
		Path:    path,
		Sheet:   sheet,
		Rows:    rows,
		Summary: Summarize(rows),
	}, nil
}

func checkHeader(header []string) error {
	if len(header) != types.ColumnCount {
		return fmt.Errorf("%w: got %d columns, want %d", ErrUnexpectedHeader, len(header), types.ColumnCount)
	}
	for i, want := range types.Header {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrUnexpectedHeader, i+1, header[i], want)
		}
	}
	return nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
