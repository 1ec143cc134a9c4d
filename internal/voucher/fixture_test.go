package voucher

// fixtureNode is an in-memory Node used to drive the flattener without a
// parsed document.
type fixtureNode struct {
	tag      string
	text     string
	children []*fixtureNode
}

func el(tag, text string) *fixtureNode {
	return &fixtureNode{tag: tag, text: text}
}

func node(tag string, children ...*fixtureNode) *fixtureNode {
	return &fixtureNode{tag: tag, children: children}
}

func (n *fixtureNode) ChildText(tag string) (string, bool) {
	for _, c := range n.children {
		if c.tag == tag {
			return c.text, true
		}
	}
	return "", false
}

func (n *fixtureNode) Children(tag string) []Node {
	var out []Node
	for _, c := range n.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func (n *fixtureNode) Descendants(tag string) []Node {
	var out []Node
	for _, c := range n.children {
		if c.tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Descendants(tag)...)
	}
	return out
}

// without returns a copy of n lacking its direct children named tag.
func (n *fixtureNode) without(tag string) *fixtureNode {
	cp := &fixtureNode{tag: n.tag, text: n.text}
	for _, c := range n.children {
		if c.tag != tag {
			cp.children = append(cp.children, c)
		}
	}
	return cp
}

func receipt(date, number, party string, entries ...*fixtureNode) *fixtureNode {
	children := []*fixtureNode{
		el(TagDate, date),
		el(TagVoucherNumber, number),
		el(TagPartyLedgerName, party),
	}
	return node("VOUCHER", append(children, entries...)...)
}

func debtorEntry(ledger, amount string, bills ...*fixtureNode) *fixtureNode {
	children := []*fixtureNode{
		el(TagDeemedPositive, "No"),
		el(TagLedgerName, ledger),
		el(TagAmount, amount),
	}
	return node(TagLedgerEntries, append(children, bills...)...)
}

func cashEntry(ledger, amount string) *fixtureNode {
	return node(TagLedgerEntries,
		el(TagDeemedPositive, "Yes"),
		el(TagLedgerName, ledger),
		el(TagAmount, amount),
	)
}

func bill(name, billType, amount string) *fixtureNode {
	return node(TagBillAllocations,
		el(TagBillName, name),
		el(TagBillType, billType),
		el(TagAmount, amount),
	)
}
