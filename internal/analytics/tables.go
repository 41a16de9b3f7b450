package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultColor is used for categories without an assigned color.
const DefaultColor = "#888888"

var categoryColors = map[string]string{
	"Rent":          "#FF6634",
	"Food":          "#FFAA33",
	"Transport":     "#33AAFF",
	"Utilities":     "#33DDAA",
	"Entertainment": "#7744FF",
	"Shopping":      "#FF44AA",
	"Healthcare":    "#44EEFF",
	"Education":     "#AABB33",
	"Travel":        "#FF88CC",
	OtherCategory:   DefaultColor,
}

// CategoryColor returns the chart color of an expense category.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Fixed conversion rates to INR. Unknown codes convert at 1.
var inrRates = map[string]decimal.Decimal{
	"USD": decimal.RequireFromString("83.5"),
	"EUR": decimal.RequireFromString("90.2"),
	"GBP": decimal.RequireFromString("106.8"),
	"INR": decimal.NewFromInt(1),
}

// ToINR converts amount in the currency with ISO code to rupees.
func ToINR(code string, amount decimal.Decimal) decimal.Decimal {
	rate, ok := inrRates[strings.ToUpper(code)]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}
