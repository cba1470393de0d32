// Package tax computes GST monetary splits for invoices. It is pure
// computation: no persistence, no I/O, exact decimal arithmetic
// throughout.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
	"gstbooks/internal/money"
)

// LineItem is one invoice line as seen by the engine.
type LineItem struct {
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	LineDiscount decimal.Decimal
	GSTRate      decimal.Decimal
}

// Taxable returns quantity*unitPrice - lineDiscount, unrounded.
func (li LineItem) Taxable() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice).Sub(li.LineDiscount)
}

// SupplyContext carries the place-of-supply decision inputs.
// OrgStateCode is the organization's registered GST state code;
// PlaceOfSupply is the destination state code, empty when unknown.
type SupplyContext struct {
	OrgStateCode  string
	PlaceOfSupply string
}

// InterState reports whether the supply crosses state lines. A missing
// or unknown place of supply is treated as intra-state so that tax is
// never erroneously routed to IGST on incomplete data.
func (s SupplyContext) InterState() bool {
	if s.PlaceOfSupply == "" || s.OrgStateCode == "" {
		return false
	}
	return s.PlaceOfSupply != s.OrgStateCode
}

// Totals is the invoice-level result of ComputeInvoiceTotals. All
// amounts are rounded half-up to two places; Net carries any residual
// minor unit left by component rounding.
type Totals struct {
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	Net          decimal.Decimal
	InterState   bool
}

// ComputeInvoiceTotals computes taxable value, the CGST/SGST or IGST
// split, and the net amount for a set of line items. The intra- vs
// inter-state decision is made once for the whole invoice; per-line
// rates only size the tax, never its routing.
func ComputeInvoiceTotals(items []LineItem, supply SupplyContext) (*Totals, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("items", "invoice must have at least one line item")
	}

	taxable := decimal.Zero
	tax := decimal.Zero
	for i, item := range items {
		lineTaxable := item.Taxable()
		if lineTaxable.IsNegative() {
			return nil, domain.NewValidationError(
				fmt.Sprintf("items[%d].line_total", i),
				"discount exceeds line value",
			)
		}
		if item.GSTRate.IsNegative() {
			return nil, domain.NewValidationError(
				fmt.Sprintf("items[%d].gst_rate", i),
				"gst rate must not be negative",
			)
		}
		taxable = taxable.Add(lineTaxable)
		tax = tax.Add(money.Percent(lineTaxable, item.GSTRate))
	}

	t := &Totals{
		InterState: supply.InterState(),
		CGST:       decimal.Zero,
		SGST:       decimal.Zero,
		IGST:       decimal.Zero,
	}
	if t.InterState {
		t.IGST = money.Round2(tax)
	} else {
		half := money.Half(tax)
		t.CGST = money.Round2(half)
		t.SGST = money.Round2(half)
	}
	t.TaxableValue = money.Round2(taxable)
	// Net is rounded from the exact sum, not from the rounded
	// components, so a residual minor unit ends up here rather than
	// being dropped.
	t.Net = money.Round2(taxable.Add(tax))
	return t, nil
}
