package voucher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flattenValues(t *testing.T, f *Flattener, n Node) [][]string {
	t.Helper()
	rows, err := f.FlattenNode(n)
	require.NoError(t, err)

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyDeclared, p)

	p, err = ParsePolicy("reconciled")
	require.NoError(t, err)
	assert.Equal(t, PolicyReconciled, p)

	_, err = ParsePolicy("bills")
	assert.Error(t, err)
}

func TestNewFlattenerDefaults(t *testing.T) {
	f := NewFlattener("", "")
	assert.Equal(t, PolicyDeclared, f.Policy())
	assert.Equal(t, DefaultVoucherLabel, f.label)
}

func TestFlattenSingleBillReceipt(t *testing.T) {
	n := receipt("20230115", "101", "john  smith",
		debtorEntry("abc traders", "500", bill("INV1", "Agst Ref", "500")),
	)

	want := [][]string{
		{"15-01-2023", "Parent", "101", "NA", "NA", "NA", "John  Smith", "NA", "500.00", "John  Smith", "Receipt", "Yes"},
		{"15-01-2023", "Child", "101", "INV1", "Agst Ref", "", "Abc Traders", "500.00", "NA", "Abc Traders", "Receipt", "NA"},
	}

	for _, policy := range []ParentAmountPolicy{PolicyDeclared, PolicyReconciled} {
		t.Run(string(policy), func(t *testing.T) {
			assert.Equal(t, want, flattenValues(t, NewFlattener(policy, ""), n))
		})
	}
}

func TestFlattenCashOnlyReceipt(t *testing.T) {
	n := receipt("20230115", "102", "Cash Account", cashEntry("Cash Account", "200"))

	got := flattenValues(t, NewFlattener(PolicyDeclared, ""), n)
	require.Len(t, got, 2)

	assert.Equal(t, "Parent", got[0][1])
	assert.Equal(t, "", got[0][11])
	assert.Equal(t, "200.00", got[0][8])

	assert.Equal(t,
		[]string{"15-01-2023", "Other", "102", "NA", "NA", "NA", "Cash Account", "NA", "200.00", "Cash Account", "Receipt", "NA"},
		got[1])
}

func TestFlattenOtherRowKeepsRawLedgerName(t *testing.T) {
	n := receipt("20230115", "103", "party",
		debtorEntry("party", "10", bill("INV1", "Agst Ref", "10")),
		cashEntry("HDFC bank A/C", "-10"),
	)

	got := flattenValues(t, NewFlattener(PolicyDeclared, ""), n)
	require.Len(t, got, 3)
	assert.Equal(t, "Other", got[2][1])
	assert.Equal(t, "HDFC bank A/C", got[2][6])
	assert.Equal(t, "HDFC bank A/C", got[2][9])
	assert.Equal(t, "-10.00", got[2][8])
}

func TestFlattenVerificationFlag(t *testing.T) {
	testCases := []struct {
		name   string
		policy ParentAmountPolicy
		input  *fixtureNode
		want   string
	}{
		{
			"DeclaredMatchesBills",
			PolicyDeclared,
			receipt("20230115", "1", "p", debtorEntry("p", "300.00", bill("A", "Agst Ref", "100.10"), bill("B", "Agst Ref", "199.90"))),
			"Yes",
		},
		{
			"DeclaredDiffersFromBills",
			PolicyDeclared,
			receipt("20230115", "1", "p", debtorEntry("p", "300", bill("A", "Agst Ref", "250"))),
			"No",
		},
		{
			"ReconciledAlwaysMatches",
			PolicyReconciled,
			receipt("20230115", "1", "p", debtorEntry("p", "300", bill("A", "Agst Ref", "250"))),
			"Yes",
		},
		{
			"ZeroTotalLeavesFlagEmpty",
			PolicyDeclared,
			receipt("20230115", "1", "p", debtorEntry("p", "0", bill("A", "Agst Ref", "0"))),
			"",
		},
		{
			"NegativeTotalLeavesFlagEmpty",
			PolicyReconciled,
			receipt("20230115", "1", "p", debtorEntry("p", "-5", bill("A", "Agst Ref", "-5"))),
			"",
		},
		{
			"DeclaredRoundedBeforeCompare",
			PolicyDeclared,
			receipt("20230115", "1", "p", debtorEntry("p", "10.004", bill("A", "Agst Ref", "10"))),
			"Yes",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := flattenValues(t, NewFlattener(tc.policy, ""), tc.input)
			require.NotEmpty(t, got)
			assert.Equal(t, tc.want, got[0][11])
		})
	}
}

func TestFlattenChildRowsAreNeverVerified(t *testing.T) {
	n := receipt("20230115", "104", "party",
		debtorEntry("first party", "10", bill("A", "Agst Ref", "4"), bill("B", "New Ref", "6")),
		debtorEntry("second party", "5", bill("C", "Advance", "5")),
	)

	got := flattenValues(t, NewFlattener(PolicyDeclared, "Receipt"), n)
	require.Len(t, got, 4)

	assert.Equal(t, []string{"A", "B", "C"}, []string{got[1][3], got[2][3], got[3][3]})
	assert.Equal(t, "Second Party", got[3][6])
	for _, row := range got[1:] {
		assert.Equal(t, "Child", row[1])
		assert.Equal(t, "NA", row[8])
		assert.Equal(t, "NA", row[11])
	}
}

func TestFlattenSkipsUnknownPolarity(t *testing.T) {
	n := receipt("20230115", "105", "party",
		node(TagLedgerEntries, el(TagDeemedPositive, "Unknown"), el(TagAmount, "10")),
		cashEntry("Cash", "10"),
	)

	got := flattenValues(t, NewFlattener(PolicyDeclared, ""), n)
	require.Len(t, got, 2)
	assert.Equal(t, "Parent", got[0][1])
	assert.Equal(t, "Other", got[1][1])
}

func TestFlattenMatchesPolarityExactly(t *testing.T) {
	for _, flag := range []string{" Yes ", "yes", "no", "No ", "YES"} {
		t.Run(flag, func(t *testing.T) {
			n := receipt("20230115", "1", "party",
				node(TagLedgerEntries,
					el(TagDeemedPositive, flag),
					el(TagLedgerName, "Cash"),
					el(TagAmount, "5"),
					bill("INV1", "Agst Ref", "5"),
				),
			)

			got := flattenValues(t, NewFlattener(PolicyDeclared, ""), n)
			require.Len(t, got, 1)
			assert.Equal(t, "Parent", got[0][1])
			assert.Equal(t, "5.00", got[0][8])
			assert.Equal(t, "", got[0][11])
		})
	}
}

func TestFlattenEmptyVoucherYieldsNoRows(t *testing.T) {
	rows, err := NewFlattener(PolicyDeclared, "").FlattenNode(receipt("bad date", "106", "party"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFlattenCustomLabel(t *testing.T) {
	n := receipt("20230115", "107", "party", cashEntry("Cash", "1"))

	got := flattenValues(t, NewFlattener(PolicyDeclared, "Bank Receipt"), n)
	for _, row := range got {
		assert.Equal(t, "Bank Receipt", row[10])
	}
}

func TestFlattenErrors(t *testing.T) {
	t.Run("MalformedDate", func(t *testing.T) {
		n := receipt("2023-01-15", "108", "party", cashEntry("Cash", "1"))

		_, err := NewFlattener(PolicyDeclared, "").FlattenNode(n)
		var bad *DateFormatError
		require.True(t, errors.As(err, &bad), "got %v", err)
		assert.Equal(t, "108", bad.Voucher)
		assert.Equal(t, "2023-01-15", bad.Value)
	})

	t.Run("MissingParty", func(t *testing.T) {
		n := receipt("20230115", "109", "party", cashEntry("Cash", "1")).without(TagPartyLedgerName)

		_, err := NewFlattener(PolicyDeclared, "").FlattenNode(n)
		var missing *MissingFieldError
		require.True(t, errors.As(err, &missing), "got %v", err)
		assert.Equal(t, "109", missing.Voucher)
		assert.Equal(t, TagPartyLedgerName, missing.Field)
	})

	t.Run("DeclaredAmountAbsent", func(t *testing.T) {
		v := Voucher{
			Date:      "20230115",
			Number:    "110",
			PartyName: "party",
			Entries:   []LedgerEntry{{Polarity: PolarityUnknown}},
		}

		_, err := NewFlattener(PolicyDeclared, "").Flatten(v)
		var missing *MissingFieldError
		require.True(t, errors.As(err, &missing))

		rows, err := NewFlattener(PolicyReconciled, "").Flatten(v)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "0.00", rows[0].Amount)
	})
}
