package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func item(qty, price, discount, rate string) LineItem {
	return LineItem{
		Quantity:     d(qty),
		UnitPrice:    d(price),
		LineDiscount: d(discount),
		GSTRate:      d(rate),
	}
}

func TestComputeInvoiceTotals_IntraState(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]LineItem{item("2", "100", "0", "18")},
		SupplyContext{OrgStateCode: "29", PlaceOfSupply: "29"},
	)
	require.NoError(t, err)

	assert.False(t, totals.InterState)
	assert.True(t, totals.TaxableValue.Equal(d("200")), "taxable %s", totals.TaxableValue)
	assert.True(t, totals.CGST.Equal(d("18")), "cgst %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(d("18")), "sgst %s", totals.SGST)
	assert.True(t, totals.IGST.IsZero())
	assert.True(t, totals.Net.Equal(d("236")), "net %s", totals.Net)
}

func TestComputeInvoiceTotals_InterState(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]LineItem{item("2", "100", "0", "18")},
		SupplyContext{OrgStateCode: "29", PlaceOfSupply: "07"},
	)
	require.NoError(t, err)

	assert.True(t, totals.InterState)
	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, totals.IGST.Equal(d("36")), "igst %s", totals.IGST)
	assert.True(t, totals.Net.Equal(d("236")), "net %s", totals.Net)
}

func TestComputeInvoiceTotals_UnknownPlaceOfSupplyDefaultsIntraState(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]LineItem{item("1", "100", "0", "18")},
		SupplyContext{OrgStateCode: "29"},
	)
	require.NoError(t, err)

	assert.False(t, totals.InterState)
	assert.True(t, totals.IGST.IsZero())
	assert.True(t, totals.CGST.Equal(d("9")))
	assert.True(t, totals.SGST.Equal(d("9")))
}

func TestComputeInvoiceTotals_NetBalancesWithinOneMinorUnit(t *testing.T) {
	// Odd tax amounts force rounding on the CGST/SGST halves.
	items := []LineItem{
		item("1", "99.99", "0", "18"),
		item("3", "33.33", "0.01", "12"),
		item("1", "10.55", "0", "5"),
	}
	totals, err := ComputeInvoiceTotals(items, SupplyContext{OrgStateCode: "29", PlaceOfSupply: "29"})
	require.NoError(t, err)

	sum := totals.TaxableValue.Add(totals.CGST).Add(totals.SGST).Add(totals.IGST)
	diff := totals.Net.Sub(sum).Abs()
	assert.True(t, diff.LessThanOrEqual(d("0.01")), "residual %s exceeds one minor unit", diff)
}

func TestComputeInvoiceTotals_ZeroRateItemContributesTaxableOnly(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]LineItem{
			item("2", "50", "0", "0"),
			item("1", "100", "0", "18"),
		},
		SupplyContext{OrgStateCode: "29", PlaceOfSupply: "29"},
	)
	require.NoError(t, err)

	assert.True(t, totals.TaxableValue.Equal(d("200")))
	assert.True(t, totals.CGST.Equal(d("9")))
	assert.True(t, totals.SGST.Equal(d("9")))
	assert.True(t, totals.Net.Equal(d("218")))
}

func TestComputeInvoiceTotals_LineDiscountApplied(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]LineItem{item("2", "100", "50", "18")},
		SupplyContext{OrgStateCode: "29", PlaceOfSupply: "29"},
	)
	require.NoError(t, err)

	assert.True(t, totals.TaxableValue.Equal(d("150")))
	assert.True(t, totals.Net.Equal(d("177")))
}

func TestComputeInvoiceTotals_EmptyItems(t *testing.T) {
	_, err := ComputeInvoiceTotals(nil, SupplyContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeInvoiceTotals_NegativeLineTaxable(t *testing.T) {
	_, err := ComputeInvoiceTotals(
		[]LineItem{item("1", "10", "20", "18")},
		SupplyContext{OrgStateCode: "29", PlaceOfSupply: "29"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].line_total", verr.Field)
}
