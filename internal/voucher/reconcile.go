package voucher

import (
	"github.com/shopspring/decimal"
)

// AmountPlaces is the precision every reconciled and reported amount uses.
const AmountPlaces = 2

// Reconcile sums the bill allocations of every debtor-side entry and rounds
// the result to AmountPlaces, half away from zero.
//
// Cash-side and unrecognized entries contribute nothing; their own amount
// only shows up later as an Other row.
func Reconcile(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero

	for _, entry := range entries {
		if entry.Polarity != PolarityDebtor {
			continue
		}
		for _, bill := range entry.Bills {
			total = total.Add(bill.Amount)
		}
	}

	return total.Round(AmountPlaces)
}
