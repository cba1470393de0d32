package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportPeriod is the inclusive issue-date range of a statutory report.
// Nil bounds mean unbounded on that side.
type ReportPeriod struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// GstrRow is one outward-supply row of a GSTR-1 style report. Monetary
// and date fields are pre-formatted strings so the JSON and CSV
// serializations of the same query cannot drift.
type GstrRow struct {
	SupplierGSTIN  string `json:"supplier_gstin"`
	RecipientGSTIN string `json:"recipient_gstin"`
	InvoiceNumber  string `json:"invoice_number"`
	InvoiceDate    string `json:"invoice_date"`
	InvoiceValue   string `json:"invoice_value"`
	PlaceOfSupply  string `json:"place_of_supply"`
	Rate           string `json:"rate"`
	TaxableValue   string `json:"taxable_value"`
	IGST           string `json:"igst"`
	CGST           string `json:"cgst"`
	SGST           string `json:"sgst"`
	Cess           string `json:"cess"`
	EWayBillNo     string `json:"ewaybill_no"`
	DocumentType   string `json:"document_type"`
}

// PeriodTotals is the GSTR-3B style aggregate over a period.
type PeriodTotals struct {
	Taxable decimal.Decimal `db:"taxable"`
	CGST    decimal.Decimal `db:"cgst"`
	SGST    decimal.Decimal `db:"sgst"`
	IGST    decimal.Decimal `db:"igst"`
	Cess    decimal.Decimal `db:"cess"`
}

// PeriodTotalsExport is the formatted serialization of PeriodTotals,
// shared by the JSON and CSV exporters.
type PeriodTotalsExport struct {
	Taxable string `json:"taxable"`
	CGST    string `json:"cgst"`
	SGST    string `json:"sgst"`
	IGST    string `json:"igst"`
	Cess    string `json:"cess"`
}

// SalesSummary aggregates the organization's outward supplies.
type SalesSummary struct {
	TotalInvoices   int             `db:"total_invoices" json:"total_invoices"`
	TotalSales      decimal.Decimal `db:"total_sales" json:"total_sales"`
	AvgInvoiceValue decimal.Decimal `db:"avg_invoice_value" json:"avg_invoice_value"`
}

// TaxLiability aggregates output tax across the organization.
type TaxLiability struct {
	TotalCGST decimal.Decimal `db:"total_cgst" json:"total_cgst"`
	TotalSGST decimal.Decimal `db:"total_sgst" json:"total_sgst"`
	TotalIGST decimal.Decimal `db:"total_igst" json:"total_igst"`
	TotalTax  decimal.Decimal `db:"total_tax" json:"total_tax"`
}

// TopCustomerRow ranks customers by total invoiced value.
type TopCustomerRow struct {
	CustomerID   uuid.UUID       `db:"id" json:"customer_id"`
	Name         string          `db:"name" json:"name"`
	InvoiceCount int             `db:"invoice_count" json:"invoice_count"`
	TotalSpent   decimal.Decimal `db:"total_spent" json:"total_spent"`
}
