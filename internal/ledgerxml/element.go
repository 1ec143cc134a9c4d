package ledgerxml

import (
	"github.com/beevik/etree"
	"github.com/ginjaninja78/tally-receipt-report/internal/voucher"
)

// Element adapts an etree element to voucher.Node.
type Element struct {
	e *etree.Element
}

func (el *Element) ChildText(tag string) (string, bool) {
	child := el.e.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

func (el *Element) Children(tag string) []voucher.Node {
	return wrap(el.e.SelectElements(tag))
}

// Descendants walks the subtree depth-first so matches come back in
// document order; etree's ".//" path queries visit breadth-first.
func (el *Element) Descendants(tag string) []voucher.Node {
	var found []*etree.Element
	collect(el.e, tag, &found)
	return wrap(found)
}

func collect(e *etree.Element, tag string, found *[]*etree.Element) {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			*found = append(*found, child)
		}
		collect(child, tag, found)
	}
}

func wrap(elements []*etree.Element) []voucher.Node {
	if len(elements) == 0 {
		return nil
	}
	nodes := make([]voucher.Node, len(elements))
	for i, e := range elements {
		nodes[i] = &Element{e: e}
	}
	return nodes
}
