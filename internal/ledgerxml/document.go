// =============================================================================
// Receipt Voucher Report - Ledger XML Reader
// =============================================================================
//
// This package loads a ledger export and exposes its vouchers through the
// voucher.Node interface.
//
// ENCODING:
//   Ledger exports are frequently UTF-16 with a byte order mark. The input is
//   transcoded to UTF-8 from its BOM before parsing; other declared charsets
//   are handled through the XML declaration.
//
// =============================================================================

package ledgerxml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/ginjaninja78/tally-receipt-report/internal/voucher"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultVoucherType is the VCHTYPE attribute selected when none is given.
const DefaultVoucherType = "Receipt"

// Document is a parsed ledger export.
type Document struct {
	doc *etree.Document
}

// ReadFile loads and parses the ledger export at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses a ledger export held in memory.
func Parse(data []byte) (*Document, error) {
	utf8Data, err := decodeBOM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ledger text: %w", err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	if err := doc.ReadFromBytes(utf8Data); err != nil {
		return nil, fmt.Errorf("failed to parse ledger XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse ledger XML: document has no root element")
	}

	return &Document{doc: doc}, nil
}

// VoucherPath returns the query selecting every VOUCHER element whose
// VCHTYPE attribute equals vchType.
func VoucherPath(vchType string) (etree.Path, error) {
	if vchType == "" {
		vchType = DefaultVoucherType
	}
	if strings.ContainsAny(vchType, `'"[]`) {
		return etree.Path{}, fmt.Errorf("invalid voucher type %q", vchType)
	}
	return etree.CompilePath(fmt.Sprintf("//VOUCHER[@VCHTYPE='%s']", vchType))
}

// Vouchers returns the vouchers of the given type in document order.
func (d *Document) Vouchers(vchType string) ([]voucher.Node, error) {
	path, err := VoucherPath(vchType)
	if err != nil {
		return nil, err
	}

	elements := d.doc.FindElementsPath(path)
	nodes := make([]voucher.Node, len(elements))
	for i, e := range elements {
		nodes[i] = &Element{e: e}
	}
	return nodes, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// decodeBOM transcodes UTF-16 input with a byte order mark to UTF-8 and
// strips a UTF-8 BOM. Input without a BOM is returned unchanged.
func decodeBOM(data []byte) ([]byte, error) {
	if !hasBOM(data) {
		return data, nil
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// charsetReader resolves the encoding named in the XML declaration.
// UTF-16 input has already been transcoded by decodeBOM.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16", "utf-16le", "utf-16be", "utf16":
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
