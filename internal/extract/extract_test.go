package extract

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
)

func TestNormalize_FullDocument(t *testing.T) {
	raw := json.RawMessage(`{
		"Invoice Number": "B-1042",
		"Invoice Date": "2025-04-12",
		"Vendor Name": " Sharma Traders ",
		"Vendor GSTIN": "29AAACS1234A1Z5",
		"Items": [
			{"Item Name": "A4 Paper", "Quantity": 3, "Unit Price": 250, "GST Rate": 12},
			{"Description": "Stapler", "Qty": "2", "Rate": "120.50", "applied_gst_rate": 18}
		],
		"Taxable Amount": 991,
		"CGST Amount": 66.64,
		"SGST Amount": 66.64,
		"IGST Amount": 0,
		"Total Amount": 1124.28
	}`)

	ex, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "B-1042", ex.InvoiceNumber)
	require.NotNil(t, ex.InvoiceDate)
	assert.Equal(t, "2025-04-12", ex.InvoiceDate.Format("2006-01-02"))
	assert.Equal(t, "Sharma Traders", ex.VendorName)

	require.Len(t, ex.Items, 2)
	assert.Equal(t, "A4 Paper", ex.Items[0].Description)
	assert.True(t, ex.Items[1].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, ex.Items[1].UnitPrice.Equal(decimal.RequireFromString("120.50")))

	assert.True(t, ex.Subtotal.Equal(decimal.NewFromInt(991)))
	assert.True(t, ex.Total.Equal(decimal.RequireFromString("1124.28")))
	assert.JSONEq(t, string(raw), string(ex.Raw))
}

func TestNormalize_ErrorFieldAborts(t *testing.T) {
	_, err := Normalize(json.RawMessage(`{"error": "image too blurry"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "image too blurry")
}

func TestNormalize_MalformedJSON(t *testing.T) {
	_, err := Normalize(json.RawMessage(`not json`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestNormalize_CoercionDefaults(t *testing.T) {
	raw := json.RawMessage(`{
		"Invoice Date": "someday soon",
		"Items": [
			{"Item Name": "", "Quantity": "many", "Unit Price": -5}
		],
		"Taxable Amount": "n/a"
	}`)

	ex, err := Normalize(raw)
	require.NoError(t, err)

	assert.Nil(t, ex.InvoiceDate)
	assert.True(t, ex.Subtotal.IsZero())
	require.Len(t, ex.Items, 1)
	assert.Equal(t, "Item", ex.Items[0].Description)
	assert.True(t, ex.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, ex.Items[0].UnitPrice.IsZero())
}

func TestReconciledSubtotal_RecomputesFromItems(t *testing.T) {
	raw := json.RawMessage(`{
		"Items": [{"Item Name": "Widget", "Quantity": 3, "Unit Price": 50}],
		"Taxable Amount": 0
	}`)
	ex, err := Normalize(raw)
	require.NoError(t, err)

	assert.True(t, ex.ReconciledSubtotal().Equal(decimal.NewFromInt(150)))
}

func TestReconciledSubtotal_TrustsNonZeroAggregate(t *testing.T) {
	raw := json.RawMessage(`{
		"Items": [{"Item Name": "Widget", "Quantity": 3, "Unit Price": 50}],
		"Taxable Amount": 145.5
	}`)
	ex, err := Normalize(raw)
	require.NoError(t, err)

	assert.True(t, ex.ReconciledSubtotal().Equal(decimal.RequireFromString("145.5")))
}

func TestNormalize_CommaGroupedAmounts(t *testing.T) {
	ex, err := Normalize(json.RawMessage(`{"Total Amount": "1,24,500.00"}`))
	require.NoError(t, err)
	assert.True(t, ex.Total.Equal(decimal.NewFromInt(124500)))
}
