package fields

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupedPrinter = message.NewPrinter(language.English)

// cents converts a sampled float to an amount rounded to the cent
func cents(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// mulCents multiplies and rounds the product to the cent
func mulCents(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatGrouped formats with thousands separators, e.g. 1,234.50
func formatGrouped(d decimal.Decimal) string {
	return groupedPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// ParseMoney reads a formatted amount back, ignoring currency symbols and grouping
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func sumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}
