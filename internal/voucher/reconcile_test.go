package voucher

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debtor(amounts ...string) LedgerEntry {
	entry := LedgerEntry{Polarity: PolarityDebtor, LedgerName: "debtor"}
	for _, a := range amounts {
		entry.Bills = append(entry.Bills, BillAllocation{Name: "INV", Type: "Agst Ref", Amount: dec(a)})
	}
	return entry
}

func TestReconcile(t *testing.T) {
	testCases := []struct {
		name    string
		entries []LedgerEntry
		want    string
	}{
		{"NoEntries", nil, "0"},
		{"SingleBill", []LedgerEntry{debtor("500")}, "500"},
		{"ManyBillsManyEntries", []LedgerEntry{debtor("100.10", "200.20"), debtor("0.70")}, "301"},
		{
			"CashEntriesExcluded",
			[]LedgerEntry{
				debtor("250"),
				{Polarity: PolarityCash, Amount: dec("-250"), Bills: []BillAllocation{{Amount: dec("999")}}},
			},
			"250",
		},
		{
			"UnknownPolarityExcluded",
			[]LedgerEntry{debtor("10"), {Polarity: PolarityUnknown, Bills: []BillAllocation{{Amount: dec("5")}}}},
			"10",
		},
		{"CancellingBills", []LedgerEntry{debtor("75.50", "-75.50")}, "0"},
		{"RoundsHalfUp", []LedgerEntry{debtor("0.005")}, "0.01"},
		{"RoundsHalfAwayFromZero", []LedgerEntry{debtor("-0.005")}, "-0.01"},
		{"RoundsDown", []LedgerEntry{debtor("10.004")}, "10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.entries)
			assert.True(t, dec(tc.want).Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestReconcileIgnoresEntryOrder(t *testing.T) {
	a := debtor("0.1", "0.2")
	b := debtor("1234.567")
	c := LedgerEntry{Polarity: PolarityCash, Amount: dec("-1234.867")}

	want := Reconcile([]LedgerEntry{a, b, c})
	assert.True(t, want.Equal(Reconcile([]LedgerEntry{c, b, a})))
	assert.True(t, want.Equal(Reconcile([]LedgerEntry{b, c, a})))
	assert.True(t, dec("1234.87").Equal(want))
}
