package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
)

func sampleRow() domain.GstrRow {
	return domain.GstrRow{
		SupplierGSTIN:  "27AAACM1234A1Z5",
		RecipientGSTIN: "29AAACB9876B1Z2",
		InvoiceNumber:  "INV-001",
		InvoiceDate:    "05/04/2026",
		InvoiceValue:   "236.00",
		PlaceOfSupply:  "27",
		Rate:           "18",
		TaxableValue:   "200.00",
		IGST:           "0.00",
		CGST:           "18.00",
		SGST:           "18.00",
		Cess:           "0.00",
		EWayBillNo:     "",
		DocumentType:   "Invoice",
	}
}

func TestWriteGstr1(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteGstr1([]domain.GstrRow{sampleRow()}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	header, err := r.Read()
	require.NoError(t, err)
	assert.Len(t, header, 14)
	assert.Equal(t, "SupplierGSTIN", header[0])
	assert.Equal(t, "CentralTax", header[9])
	assert.Equal(t, "DocumentType", header[13])

	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "INV-001", row[2])
	assert.Equal(t, "05/04/2026", row[3])
	assert.Equal(t, "18.00", row[9])
	assert.Equal(t, "0.00", row[8])
}

func TestWriteGstr1_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteGstr1(nil))
	w.Flush()

	r := csv.NewReader(&buf)
	header, err := r.Read()
	require.NoError(t, err)
	assert.Len(t, header, 14)
	_, err = r.Read()
	assert.Error(t, err)
}

func TestWriteGstr3b(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteGstr3b(domain.PeriodTotalsExport{
		Taxable: "1500.50",
		CGST:    "135.00",
		SGST:    "135.00",
		IGST:    "0.00",
		Cess:    "0.00",
	}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	header, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Taxable", "CGST", "SGST", "IGST", "Cess"}, header)

	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "1500.50", row[0])
	assert.Equal(t, "135.00", row[1])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "GSTR-1_Apr_2026", SanitizeFilename("GSTR-1 Apr 2026"))
	assert.Equal(t, "report", SanitizeFilename("__report__"))
	assert.Equal(t, "a_b", SanitizeFilename("a///b"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("gstr1 report", "csv")
	assert.Contains(t, name, "gstr1_report_")
	assert.Contains(t, name, ".csv")
}
