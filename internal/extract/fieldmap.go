package extract

import (
	"gstbooks/internal/domain"
	"gstbooks/internal/money"
)

// InvoiceFieldMap builds the canonical field map handed to the
// document renderer. It uses the same key vocabulary the extractor
// emits so one template pipeline serves both directions.
func InvoiceFieldMap(org *domain.Organization, inv *domain.Invoice, items []domain.InvoiceItem, customer *domain.Customer) map[string]any {
	mapped := make([]map[string]any, 0, len(items))
	for _, it := range items {
		lineTaxable := it.Quantity.Mul(it.UnitPrice).Sub(it.LineDiscount)
		mapped = append(mapped, map[string]any{
			"Item Name":  it.Description,
			"Quantity":   it.Quantity.String(),
			"Unit Price": money.Format(it.UnitPrice),
			"Line Total": money.Format(lineTaxable),
			"GST Rate":   it.GSTRate.String(),
			"GST Amount": money.Format(money.Percent(lineTaxable, it.GSTRate)),
		})
	}

	fields := map[string]any{
		"Invoice Number": inv.InvoiceNumber,
		"Invoice Date":   inv.IssueDate.Format("2006-01-02"),
		"Vendor Name":    org.Name,
		"Vendor GSTIN":   org.GSTIN,
		"Items":          mapped,
		"Taxable Amount": money.Format(inv.TaxableValue),
		"CGST Amount":    money.Format(inv.CGSTAmount),
		"SGST Amount":    money.Format(inv.SGSTAmount),
		"IGST Amount":    money.Format(inv.IGSTAmount),
		"Total Tax":      money.Format(inv.CGSTAmount.Add(inv.SGSTAmount).Add(inv.IGSTAmount)),
		"Total Amount":   money.Format(inv.NetAmount),
	}
	if customer != nil {
		fields["Customer Name"] = customer.Name
		fields["Customer GSTIN"] = customer.GSTIN
		fields["Customer Email"] = customer.Email
		fields["Customer Phone"] = customer.Phone
	}
	if inv.PlaceOfSupply != "" {
		fields["Place of Supply"] = inv.PlaceOfSupply
	}
	return fields
}
