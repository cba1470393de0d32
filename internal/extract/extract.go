// Package extract converts the document extractor's untyped field map
// into the canonical shapes the rest of the engine works with. The raw
// map never crosses this boundary: domain logic only ever sees a
// RawExtraction.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
)

// Item is a normalized extracted line item.
type Item struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
}

// RawExtraction is the typed view of one extracted document. Optional
// fields degrade to zero values; Raw retains the extractor's output
// verbatim for audit and replay.
type RawExtraction struct {
	InvoiceNumber string
	InvoiceDate   *time.Time
	VendorName    string
	VendorGSTIN   string
	CustomerName  string
	CustomerGSTIN string
	CustomerEmail string
	CustomerPhone string
	Items         []Item
	Subtotal      decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	Total         decimal.Decimal
	Raw           json.RawMessage
}

// dateLayouts are tried in order when coercing extracted dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Normalize parses the extractor output. A non-empty "error" field is
// the extractor reporting failure and aborts normalization; it is
// never reinterpreted as zero values.
func Normalize(raw json.RawMessage) (*RawExtraction, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: malformed extractor output: %v", domain.ErrExtractionFailed, err)
	}
	if msg := asString(fields["error"]); msg != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, msg)
	}

	ex := &RawExtraction{
		InvoiceNumber: asString(fields["Invoice Number"]),
		InvoiceDate:   asDate(fields["Invoice Date"]),
		VendorName:    strings.TrimSpace(asString(fields["Vendor Name"])),
		VendorGSTIN:   strings.TrimSpace(asString(fields["Vendor GSTIN"])),
		CustomerName:  strings.TrimSpace(asString(fields["Customer Name"])),
		CustomerGSTIN: strings.TrimSpace(asString(fields["Customer GSTIN"])),
		CustomerEmail: strings.TrimSpace(asString(fields["Customer Email"])),
		CustomerPhone: strings.TrimSpace(asString(fields["Customer Phone"])),
		Subtotal:      asDecimal(fields["Taxable Amount"]),
		CGST:          asDecimal(fields["CGST Amount"]),
		SGST:          asDecimal(fields["SGST Amount"]),
		IGST:          asDecimal(fields["IGST Amount"]),
		Total:         asDecimal(fields["Total Amount"]),
		Raw:           raw,
	}

	if rawItems, ok := fields["Items"].([]any); ok {
		for _, ri := range rawItems {
			m, ok := ri.(map[string]any)
			if !ok {
				continue
			}
			ex.Items = append(ex.Items, normalizeItem(m))
		}
	}

	return ex, nil
}

// normalizeItem coerces one extracted item, trying the key variants
// different extractor versions emit.
func normalizeItem(m map[string]any) Item {
	desc := firstString(m, "Item Name", "Description", "description")
	if desc == "" {
		desc = "Item"
	}
	qty := firstDecimal(m, "Quantity", "Qty", "qty")
	if !qty.IsPositive() {
		qty = decimal.NewFromInt(1)
	}
	price := firstDecimal(m, "Unit Price", "Rate", "price")
	if price.IsNegative() {
		price = decimal.Zero
	}
	rate := firstDecimal(m, "GST Rate", "applied_gst_rate", "gst_rate")
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return Item{Description: desc, Quantity: qty, UnitPrice: price, GSTRate: rate}
}

// ReconciledSubtotal returns the extracted subtotal, recomputed from
// item lines when the aggregate is absent or zero. Extracted aggregate
// fields are hints, not ground truth.
func (e *RawExtraction) ReconciledSubtotal() decimal.Decimal {
	if !e.Subtotal.IsZero() || len(e.Items) == 0 {
		return e.Subtotal
	}
	sum := decimal.Zero
	for _, it := range e.Items {
		sum = sum.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return sum
}

// TaxTotal is the sum of the extracted tax components.
func (e *RawExtraction) TaxTotal() decimal.Decimal {
	return e.CGST.Add(e.SGST).Add(e.IGST)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(n), ",", ""))
		if err != nil {
			return decimal.Zero
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func asDate(v any) *time.Time {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(asString(m[k])); s != "" {
			return s
		}
	}
	return ""
}

func firstDecimal(m map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return asDecimal(m[k])
		}
	}
	return decimal.Zero
}
