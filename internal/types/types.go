// =============================================================================
// Receipt Voucher Report - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - voucher   (builds rows)
//   - converter (accumulates rows)
//   - report    (writes and reads rows)
//
// =============================================================================

package types

// =============================================================================
// TRANSACTION KINDS
// =============================================================================

// TransactionKind classifies an output row.
type TransactionKind string

const (
	// KindParent is the single header row emitted for every voucher.
	KindParent TransactionKind = "Parent"

	// KindChild is emitted once per bill allocation of a debtor-side entry.
	KindChild TransactionKind = "Child"

	// KindOther is emitted once per cash/bank-side entry.
	KindOther TransactionKind = "Other"
)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// Header is the fixed column order of the report.
var Header = []string{
	"Date",
	"Transaction Type",
	"Vch No.",
	"Ref No",
	"Ref Type",
	"Ref Date",
	"Debtor",
	"Ref Amount",
	"Amount",
	"Particulars",
	"Vch Type",
	"Amount Verified",
}

// ColumnCount is the number of columns in every report row.
const ColumnCount = 12

// =============================================================================
// ROW
// =============================================================================

// Row represents a single line of the flattened report.
// A row is never modified after it is built.
type Row struct {
	// Date is the voucher date in DD-MM-YYYY form.
	Date string

	// Kind is Parent, Child or Other.
	Kind TransactionKind

	// VoucherNumber is kept as text; some exports use non-numeric numbers.
	VoucherNumber string

	RefNo     string
	RefType   string
	RefDate   string
	Debtor    string
	RefAmount string
	Amount    string

	// Particulars mirrors Debtor for every kind of row.
	Particulars string

	// VoucherType is the report label, always "Receipt" for this report.
	VoucherType string

	// Verified is "Yes", "No" or "" on Parent rows and "NA" elsewhere.
	Verified string
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return []string{
		r.Date,
		string(r.Kind),
		r.VoucherNumber,
		r.RefNo,
		r.RefType,
		r.RefDate,
		r.Debtor,
		r.RefAmount,
		r.Amount,
		r.Particulars,
		r.VoucherType,
		r.Verified,
	}
}

// RowFromValues builds a Row from cells in Header order.
// Missing trailing cells are treated as empty.
func RowFromValues(values []string) Row {
	cell := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	return Row{
		Date:          cell(0),
		Kind:          TransactionKind(cell(1)),
		VoucherNumber: cell(2),
		RefNo:         cell(3),
		RefType:       cell(4),
		RefDate:       cell(5),
		Debtor:        cell(6),
		RefAmount:     cell(7),
		Amount:        cell(8),
		Particulars:   cell(9),
		VoucherType:   cell(10),
		Verified:      cell(11),
	}
}
