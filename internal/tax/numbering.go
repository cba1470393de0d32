package tax

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gstbooks/internal/domain"
)

// InvoicePrefix heads every synthesized invoice number.
const InvoicePrefix = "INV-"

// minNumberLen rejects suspiciously short extracted numbers.
const minNumberLen = 3

// placeholderNumber matches generic words OCR mistakes for a document
// number: ORIGINAL, DUPLICATE, COPY, TAX INVOICE and the like.
var placeholderNumber = regexp.MustCompile(`(?i)^(original|duplicate|copy|triplicate|tax\s*invoice)$`)

// ExistsFunc reports whether a number is already taken within the
// organization. Callers run it inside the insert transaction so the
// check-then-act window stays closed.
type ExistsFunc func(number string) (bool, error)

// SanitizeCandidate trims a candidate document number and discards
// placeholder tokens and too-short strings, returning "" for "no
// usable number".
func SanitizeCandidate(candidate string) string {
	s := strings.TrimSpace(candidate)
	if len(s) < minNumberLen || placeholderNumber.MatchString(s) {
		return ""
	}
	return s
}

// Disambiguate returns candidate unchanged when free, otherwise
// candidate suffixed with the current unix-millisecond timestamp. If
// the suffixed number is itself taken the conflict is reported, never
// retried silently.
func Disambiguate(candidate string, exists ExistsFunc) (string, error) {
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	suffixed := fmt.Sprintf("%s-%d", candidate, time.Now().UnixMilli())
	taken, err = exists(suffixed)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("%w: %s", domain.ErrNumberConflict, candidate)
	}
	return suffixed, nil
}

// ResolveInvoiceNumber applies the full numbering policy: sanitize the
// caller-supplied candidate, synthesize a time-based INV- number when
// none survives, and disambiguate collisions deterministically.
func ResolveInvoiceNumber(candidate string, exists ExistsFunc) (string, error) {
	if s := SanitizeCandidate(candidate); s != "" {
		return Disambiguate(s, exists)
	}
	return Disambiguate(fmt.Sprintf("%s%d", InvoicePrefix, time.Now().UnixMilli()), exists)
}
