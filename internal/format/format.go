// Package format renders amounts for display. Every function is pure.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Currency formats amount as Indian rupees: "₹" with en-IN digit grouping
// and two fraction digits, e.g. "₹12,34,567.89". Negative amounts get a
// leading "-".
func Currency(amount decimal.Decimal) string {
	r := amount.Round(2)
	intPart, frac, _ := strings.Cut(r.Abs().StringFixed(2), ".")

	var b strings.Builder
	if r.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// groupIndian separates the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// groupThousands separates every three digits.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Money formats amount in the currency with ISO code as symbol plus
// thousands-grouped value with at most two fraction digits ("$1,234.5").
func Money(code string, amount decimal.Decimal) string {
	r := amount.Round(2)
	intPart, frac, _ := strings.Cut(r.Abs().String(), ".")

	var b strings.Builder
	if r.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(CurrencySymbol(code))
	b.WriteString(groupThousands(intPart))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// CurrencySymbol returns the display symbol for an ISO 4217 code. Codes
// without a known symbol are returned upper-cased.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(code)
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "INR":
		return "₹"
	}
	return code
}

// ValidCurrency reports whether code is a recognized ISO 4217 code.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// Round rounds to the nearest integer with ties toward positive infinity,
// so 2.5 becomes 3 and -2.5 becomes -2.
func Round(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// Percentage returns round(100 * current / target), or 0 for a zero target.
func Percentage(current, target decimal.Decimal) int64 {
	if target.IsZero() {
		return 0
	}
	return Round(current.Mul(hundred).Div(target))
}
