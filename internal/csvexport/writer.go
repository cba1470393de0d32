// Package csvexport serializes statutory report data as CSV. Column
// order is fixed and documented by the header constants; rows carry
// pre-formatted strings so the CSV output matches the JSON payload of
// the same query exactly.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gstbooks/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// gstr1Columns is the GSTR-1 row-level header (14 columns).
var gstr1Columns = []string{
	"SupplierGSTIN",
	"RecipientGSTIN",
	"InvoiceNo",
	"InvoiceDate",
	"InvoiceValue",
	"PlaceOfSupply",
	"Rate",
	"TaxableValue",
	"IGST",
	"CentralTax",
	"StateTax",
	"Cess",
	"EWayBillNo",
	"DocumentType",
}

// gstr3bColumns is the GSTR-3B summary header.
var gstr3bColumns = []string{"Taxable", "CGST", "SGST", "IGST", "Cess"}

// Writer wraps csv.Writer for exporting GSTR report data.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteGstr1 writes the GSTR-1 header followed by one row per invoice.
func (w *Writer) WriteGstr1(rows []domain.GstrRow) error {
	if err := w.csv.Write(gstr1Columns); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.SupplierGSTIN,
			r.RecipientGSTIN,
			r.InvoiceNumber,
			r.InvoiceDate,
			r.InvoiceValue,
			r.PlaceOfSupply,
			r.Rate,
			r.TaxableValue,
			r.IGST,
			r.CGST,
			r.SGST,
			r.Cess,
			r.EWayBillNo,
			r.DocumentType,
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteGstr3b writes the GSTR-3B header and the single totals row.
func (w *Writer) WriteGstr3b(totals domain.PeriodTotalsExport) error {
	if err := w.csv.Write(gstr3bColumns); err != nil {
		return err
	}
	return w.csv.Write([]string{
		totals.Taxable,
		totals.CGST,
		totals.SGST,
		totals.IGST,
		totals.Cess,
	})
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_report_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(reportName, ext string) string {
	sanitized := SanitizeFilename(reportName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
