package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits used when presenting money.
const AmountPrecision = 2

// FormatAmount renders an amount with exactly two fractional digits.
// Example: 1000 returns "1000.00", 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}
