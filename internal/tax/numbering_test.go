package tax

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
)

func neverExists(string) (bool, error) { return false, nil }

func TestSanitizeCandidate(t *testing.T) {
	cases := map[string]string{
		"ORIGINAL":     "",
		"original":     "",
		"Duplicate":    "",
		"COPY":         "",
		"TAX INVOICE":  "",
		"TaxInvoice":   "",
		"AB":           "",
		"  ":           "",
		"INV-2025-001": "INV-2025-001",
		" B-42 ":       "B-42",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeCandidate(in), "input %q", in)
	}
}

func TestResolveInvoiceNumber_KeepsFreeCandidate(t *testing.T) {
	n, err := ResolveInvoiceNumber("INV-2025-001", neverExists)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-001", n)
}

func TestResolveInvoiceNumber_SynthesizesWhenPlaceholder(t *testing.T) {
	n, err := ResolveInvoiceNumber("ORIGINAL", neverExists)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n, InvoicePrefix), "got %q", n)
	assert.Greater(t, len(n), len(InvoicePrefix))
}

func TestResolveInvoiceNumber_SuffixesOnCollision(t *testing.T) {
	exists := func(num string) (bool, error) {
		return num == "INV-7", nil
	}
	n, err := ResolveInvoiceNumber("INV-7", exists)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n, "INV-7-"), "got %q", n)
}

func TestDisambiguate_ConflictWhenSuffixTaken(t *testing.T) {
	exists := func(string) (bool, error) { return true, nil }
	_, err := Disambiguate("INV-7", exists)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNumberConflict)
}

func TestDisambiguate_PropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Disambiguate("INV-7", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
