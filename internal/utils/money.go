package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a stored currency string into a decimal. Accepts the
// legacy comma decimal separator ("1.000,50") alongside the canonical
// dot form.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// FormatMoney renders a decimal to the canonical two-fraction-digit
// currency string used everywhere at the point of persistence.
func FormatMoney(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// SplitCommission splits a prize into the collaborator's and the
// administrator's share. The collaborator share is rounded to two decimals;
// the admin share is the exact remainder, so the two always sum to the
// prize with no residual.
func SplitCommission(prize decimal.Decimal, pct float64) (collaborator, admin decimal.Decimal) {
	collaborator = prize.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)).Round(2)
	admin = prize.Sub(collaborator)
	return collaborator, admin
}
