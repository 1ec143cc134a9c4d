package voucher

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Decode reads one voucher node into the typed model.
//
// RETURNS:
//   - The decoded Voucher.
//   - A *MissingFieldError when a required element is absent or empty.
//   - An *AmountFormatError when an amount is not a decimal number.
//
// REQUIRED FIELDS:
//   - Voucher: DATE, VOUCHERNUMBER, PARTYLEDGERNAME
//   - Entry: ISDEEMEDPOSITIVE; LEDGERNAME and AMOUNT when the flag is Yes/No
//   - Bill allocation: NAME, BILLTYPE, AMOUNT
//
// Entries whose flag is not exactly "Yes" or "No" are kept with
// PolarityUnknown and are not checked further.
func Decode(n Node) (Voucher, error) {
	var v Voucher

	number, err := requiredText(n, TagVoucherNumber, "")
	if err != nil {
		return Voucher{}, err
	}
	v.Number = number

	if v.Date, err = requiredText(n, TagDate, number); err != nil {
		return Voucher{}, err
	}
	if v.PartyName, err = requiredText(n, TagPartyLedgerName, number); err != nil {
		return Voucher{}, err
	}

	entryNodes := n.Children(TagLedgerEntries)

	// The header amount is the first AMOUNT carried by any ledger entry.
	for _, entryNode := range entryNodes {
		text, ok := entryNode.ChildText(TagAmount)
		if !ok {
			continue
		}
		if strings.TrimSpace(text) != "" {
			amount, err := parseAmount(text, number, TagLedgerEntries+"/"+TagAmount)
			if err != nil {
				return Voucher{}, err
			}
			v.DeclaredAmount = decimal.NewNullDecimal(amount)
		}
		break
	}

	v.Entries = make([]LedgerEntry, 0, len(entryNodes))
	for _, entryNode := range entryNodes {
		entry, err := decodeEntry(entryNode, number)
		if err != nil {
			return Voucher{}, err
		}
		v.Entries = append(v.Entries, entry)
	}

	return v, nil
}

// decodeEntry reads one ALLLEDGERENTRIES.LIST element.
func decodeEntry(n Node, number string) (LedgerEntry, error) {
	flag, err := requiredText(n, TagDeemedPositive, number)
	if err != nil {
		return LedgerEntry{}, qualify(err, TagLedgerEntries)
	}

	entry := LedgerEntry{
		RawPolarity: flag,
		Polarity:    ParsePolarity(flag),
	}
	if entry.Polarity == PolarityUnknown {
		return entry, nil
	}

	if entry.LedgerName, err = requiredText(n, TagLedgerName, number); err != nil {
		return LedgerEntry{}, qualify(err, TagLedgerEntries)
	}

	amountText, err := requiredText(n, TagAmount, number)
	if err != nil {
		return LedgerEntry{}, qualify(err, TagLedgerEntries)
	}
	if entry.Amount, err = parseAmount(amountText, number, TagLedgerEntries+"/"+TagAmount); err != nil {
		return LedgerEntry{}, err
	}

	if entry.Polarity != PolarityDebtor {
		return entry, nil
	}

	billNodes := n.Descendants(TagBillAllocations)
	entry.Bills = make([]BillAllocation, 0, len(billNodes))
	for _, billNode := range billNodes {
		bill, err := decodeBill(billNode, number)
		if err != nil {
			return LedgerEntry{}, err
		}
		entry.Bills = append(entry.Bills, bill)
	}

	return entry, nil
}

// decodeBill reads one BILLALLOCATIONS.LIST element.
func decodeBill(n Node, number string) (BillAllocation, error) {
	var (
		bill BillAllocation
		err  error
	)

	if bill.Name, err = requiredText(n, TagBillName, number); err != nil {
		return BillAllocation{}, qualify(err, TagBillAllocations)
	}
	if bill.Type, err = requiredText(n, TagBillType, number); err != nil {
		return BillAllocation{}, qualify(err, TagBillAllocations)
	}

	amountText, err := requiredText(n, TagAmount, number)
	if err != nil {
		return BillAllocation{}, qualify(err, TagBillAllocations)
	}
	if bill.Amount, err = parseAmount(amountText, number, TagBillAllocations+"/"+TagAmount); err != nil {
		return BillAllocation{}, err
	}

	return bill, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// requiredText returns the child text, or a MissingFieldError when the child
// is absent or blank. Text is returned untrimmed so names keep their spacing.
func requiredText(n Node, tag, number string) (string, error) {
	text, ok := n.ChildText(tag)
	if !ok || strings.TrimSpace(text) == "" {
		return "", &MissingFieldError{Voucher: number, Field: tag}
	}
	return text, nil
}

// qualify prefixes the field of a MissingFieldError with its parent element.
func qualify(err error, parent string) error {
	if missing, ok := err.(*MissingFieldError); ok {
		missing.Field = parent + "/" + missing.Field
	}
	return err
}

func parseAmount(text, number, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, &AmountFormatError{
			Voucher: number,
			Field:   field,
			Value:   text,
			Err:     err,
		}
	}
	return amount, nil
}
