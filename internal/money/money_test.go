package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstbooks/internal/money"
)

func TestParseLoose(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1250.50", "1250.5"},
		{"1,250.50", "1250.5"},
		{"12,34,567.89", "1234567.89"},
		{"₹1,250", "1250"},
		{"Rs. 500", "500"},
		{"INR 99.99", "99.99"},
		{" 42 ", "42"},
		{"-10.25", "-10.25"},
		{"", "0"},
		{"n/a", "0"},
	}
	for _, tc := range cases {
		got := money.ParseLoose(tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"ParseLoose(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, "10.13", money.Format(money.Round2(decimal.RequireFromString("10.125"))))
	assert.Equal(t, "10.12", money.Format(money.Round2(decimal.RequireFromString("10.124"))))
}

func TestHalfAndPercent(t *testing.T) {
	d := decimal.RequireFromString("100")
	assert.True(t, money.Half(d).Equal(decimal.RequireFromString("50")))
	assert.True(t, money.Percent(d, decimal.RequireFromString("18")).Equal(decimal.RequireFromString("18")))
}
