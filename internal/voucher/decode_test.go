package voucher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	n := receipt("20230115", "101", "john  smith",
		debtorEntry("abc traders", "500",
			bill("INV1", "Agst Ref", "300"),
			bill("INV2", "New Ref", "200"),
		),
		cashEntry("Cash Account", "-500"),
		node(TagLedgerEntries, el(TagDeemedPositive, "Maybe")),
	)

	v, err := Decode(n)
	require.NoError(t, err)

	assert.Equal(t, "101", v.Number)
	assert.Equal(t, "20230115", v.Date)
	assert.Equal(t, "john  smith", v.PartyName)
	require.True(t, v.DeclaredAmount.Valid)
	assert.True(t, dec("500").Equal(v.DeclaredAmount.Decimal))

	require.Len(t, v.Entries, 3)
	assert.Equal(t, PolarityDebtor, v.Entries[0].Polarity)
	require.Len(t, v.Entries[0].Bills, 2)
	assert.Equal(t, "INV2", v.Entries[0].Bills[1].Name)
	assert.Equal(t, "New Ref", v.Entries[0].Bills[1].Type)

	assert.Equal(t, PolarityCash, v.Entries[1].Polarity)
	assert.True(t, dec("-500").Equal(v.Entries[1].Amount))
	assert.Empty(t, v.Entries[1].Bills)

	assert.Equal(t, PolarityUnknown, v.Entries[2].Polarity)
	assert.Equal(t, "Maybe", v.Entries[2].RawPolarity)
}

func TestDecodeFindsNestedBillAllocations(t *testing.T) {
	n := receipt("20230115", "7", "party",
		debtorEntry("party", "40",
			node("WRAPPER", bill("INV9", "Agst Ref", "40")),
		),
	)

	v, err := Decode(n)
	require.NoError(t, err)
	require.Len(t, v.Entries[0].Bills, 1)
	assert.Equal(t, "INV9", v.Entries[0].Bills[0].Name)
}

func TestDecodeMissingFields(t *testing.T) {
	good := receipt("20230115", "101", "party", debtorEntry("party", "10", bill("INV1", "Agst Ref", "10")))

	testCases := []struct {
		name      string
		input     *fixtureNode
		wantVch   string
		wantField string
	}{
		{"VoucherNumber", good.without(TagVoucherNumber), "", TagVoucherNumber},
		{"Date", good.without(TagDate), "101", TagDate},
		{"PartyName", good.without(TagPartyLedgerName), "101", TagPartyLedgerName},
		{"BlankPartyName", receipt("20230115", "101", "   "), "101", TagPartyLedgerName},
		{
			"LedgerName",
			receipt("20230115", "101", "party", cashEntry("Cash", "10").without(TagLedgerName)),
			"101", TagLedgerEntries + "/" + TagLedgerName,
		},
		{
			"Polarity",
			receipt("20230115", "101", "party", cashEntry("Cash", "10").without(TagDeemedPositive)),
			"101", TagLedgerEntries + "/" + TagDeemedPositive,
		},
		{
			"BillType",
			receipt("20230115", "101", "party", debtorEntry("party", "10", bill("INV1", "Agst Ref", "10").without(TagBillType))),
			"101", TagBillAllocations + "/" + TagBillType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			require.Error(t, err)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing), "got %T", err)
			assert.Equal(t, tc.wantVch, missing.Voucher)
			assert.Equal(t, tc.wantField, missing.Field)
			assert.Equal(t, tc.wantVch, VoucherOf(err))
		})
	}
}

func TestDecodeRejectsNonNumericAmounts(t *testing.T) {
	n := receipt("20230115", "101", "party",
		debtorEntry("party", "10", bill("INV1", "Agst Ref", "ten")),
	)

	_, err := Decode(n)
	require.Error(t, err)

	var bad *AmountFormatError
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, "101", bad.Voucher)
	assert.Equal(t, "ten", bad.Value)
	assert.Equal(t, TagBillAllocations+"/"+TagAmount, bad.Field)
}

func TestDecodeWithoutEntries(t *testing.T) {
	v, err := Decode(receipt("20230115", "101", "party"))
	require.NoError(t, err)
	assert.Empty(t, v.Entries)
	assert.False(t, v.DeclaredAmount.Valid)
}

func TestDecodeDeclaredAmountSkipsEntriesWithoutAmount(t *testing.T) {
	n := receipt("20230115", "101", "party",
		node(TagLedgerEntries, el(TagDeemedPositive, "Unknown")),
		debtorEntry("party", "75", bill("INV1", "Agst Ref", "75")),
		cashEntry("Cash", "-75"),
	)

	v, err := Decode(n)
	require.NoError(t, err)
	require.True(t, v.DeclaredAmount.Valid)
	assert.True(t, dec("75").Equal(v.DeclaredAmount.Decimal))

	rows, err := NewFlattener(PolicyDeclared, "").Flatten(v)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "75.00", rows[0].Amount)
	assert.Equal(t, "Yes", rows[0].Verified)
}
