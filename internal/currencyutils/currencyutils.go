// Package currencyutils provides amount parsing and rounding for ledger
// cells. Exports coming out of desktop accounting packages carry amounts in
// many shapes: "1,234.50", "(500.00)", "500 Cr", "500 Dr". Everything is
// normalized onto shopspring decimals.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonAmountChars = regexp.MustCompile(`[^0-9.\-()]`)
	magnitudeChars = regexp.MustCompile(`[^0-9.]`)
	nonDigitChars  = regexp.MustCompile(`[^0-9\-]`)
)

// CleanCurrency parses a ledger amount cell into a signed decimal.
//
// The magnitude comes from the digits and decimal point alone; the sign is
// decided by the first matching rule, in order: a "Cr" marker anywhere in
// the text forces negative, "Dr" forces positive, a parenthesized value is
// negative, a literal minus sign is negative. Empty or non-numeric input
// yields zero.
func CleanCurrency(raw string) decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero
	}

	upper := strings.ToUpper(raw)
	stripped := nonAmountChars.ReplaceAllString(raw, "")

	negative := false
	switch {
	case strings.Contains(upper, "CR"):
		negative = true
	case strings.Contains(upper, "DR"):
		negative = false
	case strings.Contains(stripped, "(") && strings.Contains(stripped, ")"):
		negative = true
	case strings.Contains(stripped, "-"):
		negative = true
	}

	magnitudeStr := magnitudeChars.ReplaceAllString(stripped, "")
	if magnitudeStr == "" || magnitudeStr == "." {
		return decimal.Zero
	}

	magnitude, err := decimal.NewFromString(magnitudeStr)
	if err != nil {
		return decimal.Zero
	}

	magnitude = magnitude.Abs()
	if negative {
		return magnitude.Neg()
	}
	return magnitude
}

// Round2 rounds to two decimal places, half toward positive infinity. This
// matches the display rounding used for every persisted balance.
func Round2(d decimal.Decimal) decimal.Decimal {
	half := decimal.New(5, -1)
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// ParseDayCount parses an aging day-count cell into an integer. Thousands
// separators are tolerated; anything unparsable defaults to zero.
func ParseDayCount(raw string) int {
	cleaned := nonDigitChars.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

// FormatAmount renders an amount with two decimal places for display and
// reminder text.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
