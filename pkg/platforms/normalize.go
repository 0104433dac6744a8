// Package platforms holds the normalization helpers shared by the per-vendor
// adapter packages underneath it.
package platforms

import (
	"strconv"
	"strings"
)

// PlaceholderImage is substituted when a vendor record carries no usable
// image URL, so downstream rendering never sees an empty src.
const PlaceholderImage = "https://via.placeholder.com/300x300?text=No+Image"

// knownBrands is the fixed list used to infer a brand from free text when a
// vendor response has no brand field of its own.
var knownBrands = []string{
	"Nike", "Adidas", "Zara", "H&M", "Levi's", "Gucci", "Prada",
	"Uniqlo", "Gap", "Mango", "Puma", "Reebok", "Tommy Hilfiger",
	"Calvin Klein", "Ralph Lauren", "The North Face", "Patagonia",
	"New Balance", "Converse", "Vans",
}

// ParsePrice converts a vendor price string to a float. Currency symbols,
// thousands separators and surrounding text are stripped; anything still
// unparseable comes back as 0 rather than failing the record.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Take the first numeric token only, so "4.5 out of 5" is 4.5 and not a
	// concatenation of every digit in the string.
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0
	}
	var b strings.Builder
	for _, r := range s[start:] {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
			continue
		}
		if r == ',' {
			// thousands separator inside "1,299.99"
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FromMinorUnits converts an amount expressed in minor units (cents) using
// the vendor-supplied divisor. Etsy ships {amount: 2999, divisor: 100}.
func FromMinorUnits(amount, divisor int) float64 {
	if divisor <= 0 {
		divisor = 100
	}
	return float64(amount) / float64(divisor)
}

// InferBrand scans free text (usually the listing title) for a known brand
// name, case-insensitively. Empty string when nothing matches.
func InferBrand(text string) string {
	lower := strings.ToLower(text)
	for _, b := range knownBrands {
		if strings.Contains(lower, strings.ToLower(b)) {
			return b
		}
	}
	return ""
}

// OrPlaceholder returns the given URL, or the neutral placeholder when the
// vendor sent nothing.
func OrPlaceholder(url string) string {
	if strings.TrimSpace(url) == "" {
		return PlaceholderImage
	}
	return url
}

// Clamp bounds n to [1, max]. Adapters use it to keep caller-requested
// result counts inside each vendor's page-size ceiling.
func Clamp(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
