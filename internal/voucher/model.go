// =============================================================================
// Receipt Voucher Report - Voucher Model
// =============================================================================
//
// This package holds the core of the converter: it turns one receipt voucher
// from a ledger export into the flat rows of the audit report.
//
// PROCESSING PIPELINE (per voucher):
//   1. Decode the voucher node into the typed model (decode.go)
//   2. Reconcile debtor-side bill allocations (reconcile.go)
//   3. Emit Parent, Child and Other rows (flatten.go)
//
// The package never touches files or XML directly. Input arrives through the
// Node interface so it can be driven from a parsed document or from
// in-memory fixtures.
//
// =============================================================================

package voucher

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE TREE
// =============================================================================

// Node is the read-only view of one element of the ledger document.
type Node interface {
	// ChildText returns the text of the first direct child named tag.
	// The boolean is false when no such child exists.
	ChildText(tag string) (string, bool)

	// Children returns the direct children named tag, in document order.
	Children(tag string) []Node

	// Descendants returns every element named tag below this node,
	// in document order.
	Descendants(tag string) []Node
}

// Element names used by the ledger export.
const (
	TagDate            = "DATE"
	TagVoucherNumber   = "VOUCHERNUMBER"
	TagPartyLedgerName = "PARTYLEDGERNAME"
	TagLedgerEntries   = "ALLLEDGERENTRIES.LIST"
	TagDeemedPositive  = "ISDEEMEDPOSITIVE"
	TagLedgerName      = "LEDGERNAME"
	TagAmount          = "AMOUNT"
	TagBillAllocations = "BILLALLOCATIONS.LIST"
	TagBillName        = "NAME"
	TagBillType        = "BILLTYPE"
)

// =============================================================================
// POLARITY
// =============================================================================

// Polarity tells debtor-side entries apart from cash/bank-side entries.
type Polarity int

const (
	// PolarityUnknown marks a flag value that is neither "Yes" nor "No".
	PolarityUnknown Polarity = iota

	// PolarityDebtor is the "No" side: entries carrying bill allocations.
	PolarityDebtor

	// PolarityCash is the "Yes" (deemed positive) side.
	PolarityCash
)

// ParsePolarity maps the literal flag text to a Polarity. Matching is exact:
// padded or differently cased text is PolarityUnknown.
func ParsePolarity(s string) Polarity {
	switch s {
	case "No":
		return PolarityDebtor
	case "Yes":
		return PolarityCash
	default:
		return PolarityUnknown
	}
}

func (p Polarity) String() string {
	switch p {
	case PolarityDebtor:
		return "No"
	case PolarityCash:
		return "Yes"
	default:
		return "Unknown"
	}
}

// =============================================================================
// VOUCHER STRUCTURES
// =============================================================================

// Voucher is one receipt transaction.
type Voucher struct {
	// Date is the raw compact date text (YYYYMMDD).
	Date string

	// Number is the voucher number. It is not required to be numeric.
	Number string

	PartyName string

	// DeclaredAmount is the first AMOUNT found on any ledger entry, which
	// is where the export keeps the voucher's header amount.
	DeclaredAmount decimal.NullDecimal

	Entries []LedgerEntry
}

// LedgerEntry is one line within a voucher.
type LedgerEntry struct {
	LedgerName string
	Amount     decimal.Decimal
	Polarity   Polarity

	// RawPolarity keeps the original flag text for diagnostics.
	RawPolarity string

	Bills []BillAllocation
}

// BillAllocation is one bill reference inside a debtor-side entry.
type BillAllocation struct {
	Name   string
	Type   string
	Amount decimal.Decimal
}
