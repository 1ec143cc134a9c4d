package voucher

import (
	"fmt"

	"github.com/ginjaninja78/tally-receipt-report/internal/types"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PARENT AMOUNT POLICY
// =============================================================================

// ParentAmountPolicy selects the amount shown on, and verified for, the
// Parent row.
type ParentAmountPolicy string

const (
	// PolicyDeclared uses the voucher's own declared amount.
	PolicyDeclared ParentAmountPolicy = "declared"

	// PolicyReconciled uses the reconciled bill total itself, so the check
	// passes whenever the total is positive.
	PolicyReconciled ParentAmountPolicy = "reconciled"
)

// ParsePolicy validates a policy name. An empty name selects PolicyDeclared.
func ParsePolicy(s string) (ParentAmountPolicy, error) {
	switch ParentAmountPolicy(s) {
	case "", PolicyDeclared:
		return PolicyDeclared, nil
	case PolicyReconciled:
		return PolicyReconciled, nil
	default:
		return "", fmt.Errorf("unknown parent amount policy %q (want %q or %q)", s, PolicyDeclared, PolicyReconciled)
	}
}

// =============================================================================
// REPORT MARKERS
// =============================================================================

const (
	// notApplicable fills columns that do not apply to a row kind.
	notApplicable = "NA"

	verifiedYes = "Yes"
	verifiedNo  = "No"

	// DefaultVoucherLabel is the Vch Type column value.
	DefaultVoucherLabel = "Receipt"
)

// =============================================================================
// FLATTENER
// =============================================================================

// Flattener converts vouchers into report rows. It holds no per-voucher
// state and is safe for concurrent use.
type Flattener struct {
	policy ParentAmountPolicy
	label  string
}

// NewFlattener creates a Flattener for the given policy and Vch Type label.
// An empty label falls back to DefaultVoucherLabel.
func NewFlattener(policy ParentAmountPolicy, label string) *Flattener {
	if policy == "" {
		policy = PolicyDeclared
	}
	if label == "" {
		label = DefaultVoucherLabel
	}
	return &Flattener{policy: policy, label: label}
}

// Policy returns the active parent amount policy.
func (f *Flattener) Policy() ParentAmountPolicy {
	return f.policy
}

// FlattenNode decodes a voucher node and flattens it.
func (f *Flattener) FlattenNode(n Node) ([]types.Row, error) {
	v, err := Decode(n)
	if err != nil {
		return nil, err
	}
	return f.Flatten(v)
}

// Flatten converts one voucher into its Parent row followed by its Child and
// Other rows.
//
// RETURNS:
//   - nil rows and no error when the voucher has no ledger entries.
//   - A *DateFormatError when the voucher date is malformed.
//   - A *MissingFieldError when the declared amount is needed but absent.
//
// ROW ORDER:
//   Parent first, then ledger entries in order. A debtor-side entry expands
//   into one Child row per bill allocation; a cash-side entry gives exactly
//   one Other row; any other entry is skipped.
func (f *Flattener) Flatten(v Voucher) ([]types.Row, error) {
	if len(v.Entries) == 0 {
		return nil, nil
	}

	date, err := FormatDate(v.Date)
	if err != nil {
		return nil, &DateFormatError{Voucher: v.Number, Value: v.Date, Err: err}
	}

	debtor := NormalizeName(v.PartyName)
	total := Reconcile(v.Entries)

	parentAmount, err := f.parentAmount(v, total)
	if err != nil {
		return nil, err
	}

	rows := make([]types.Row, 0, 1+len(v.Entries))
	rows = append(rows, types.Row{
		Date:          date,
		Kind:          types.KindParent,
		VoucherNumber: v.Number,
		RefNo:         notApplicable,
		RefType:       notApplicable,
		RefDate:       notApplicable,
		Debtor:        debtor,
		RefAmount:     notApplicable,
		Amount:        formatAmount(parentAmount),
		Particulars:   debtor,
		VoucherType:   f.label,
		Verified:      verificationFlag(parentAmount, total),
	})

	for _, entry := range v.Entries {
		switch entry.Polarity {
		case PolarityDebtor:
			particulars := NormalizeName(entry.LedgerName)
			for _, bill := range entry.Bills {
				rows = append(rows, types.Row{
					Date:          date,
					Kind:          types.KindChild,
					VoucherNumber: v.Number,
					RefNo:         bill.Name,
					RefType:       bill.Type,
					RefDate:       "",
					Debtor:        particulars,
					RefAmount:     formatAmount(bill.Amount),
					Amount:        notApplicable,
					Particulars:   particulars,
					VoucherType:   f.label,
					Verified:      notApplicable,
				})
			}

		case PolarityCash:
			// Cash and bank ledgers keep their registered name as-is.
			rows = append(rows, types.Row{
				Date:          date,
				Kind:          types.KindOther,
				VoucherNumber: v.Number,
				RefNo:         notApplicable,
				RefType:       notApplicable,
				RefDate:       notApplicable,
				Debtor:        entry.LedgerName,
				RefAmount:     notApplicable,
				Amount:        formatAmount(entry.Amount),
				Particulars:   entry.LedgerName,
				VoucherType:   f.label,
				Verified:      notApplicable,
			})
		}
	}

	return rows, nil
}

// parentAmount resolves the Parent row amount under the active policy.
func (f *Flattener) parentAmount(v Voucher, total decimal.Decimal) (decimal.Decimal, error) {
	if f.policy == PolicyReconciled {
		return total, nil
	}

	if !v.DeclaredAmount.Valid {
		return decimal.Zero, &MissingFieldError{
			Voucher: v.Number,
			Field:   TagLedgerEntries + "/" + TagAmount,
		}
	}
	return v.DeclaredAmount.Decimal, nil
}

// verificationFlag compares the parent amount with the reconciled total.
// A total that is not positive leaves the flag empty.
func verificationFlag(parentAmount, total decimal.Decimal) string {
	if !total.IsPositive() {
		return ""
	}
	if parentAmount.Round(AmountPlaces).Equal(total) {
		return verifiedYes
	}
	return verifiedNo
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}
