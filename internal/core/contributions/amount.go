package contributions

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// MaxFractionDigits is the precision allowed for user-entered amounts.
const MaxFractionDigits = 2

// MaxIntegerDigits bounds the whole part so every admitted amount fits NUMERIC(18, 2).
const MaxIntegerDigits = 16

var maxAmount = decimal.New(1, MaxIntegerDigits)

var (
	ErrAmountMissing     = errors.New("amount is required")
	ErrAmountMalformed   = errors.New("amount is not a plain decimal number")
	ErrAmountPrecision   = errors.New("amount has more than 2 decimal places")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)

// ParseAmount converts user-entered text into a strictly positive amount.
//
// A single comma is accepted as the decimal separator when no dot is present.
// Signs, exponents, grouping separators, more than two fractional digits and more than
// sixteen integer digits are rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, ErrAmountMissing
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return decimal.Zero, ErrAmountMalformed
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return decimal.Zero, ErrAmountMalformed
	}
	if hasDot && fracPart == "" {
		return decimal.Zero, ErrAmountMalformed
	}
	if len(fracPart) > MaxFractionDigits {
		return decimal.Zero, ErrAmountPrecision
	}
	if len(strings.TrimLeft(intPart, "0")) > MaxIntegerDigits {
		return decimal.Zero, ErrAmountMalformed
	}
	if intPart == "" {
		intPart = "0"
	}

	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, ErrAmountMalformed
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	return amount, nil
}

// ResolveAmount returns the candidate's amount. Text input takes precedence over a
// numeric value; only text input is subject to the two-decimal limit.
func ResolveAmount(candidate domain.ContributionInput) (decimal.Decimal, error) {
	if strings.TrimSpace(candidate.AmountText) != "" {
		return ParseAmount(candidate.AmountText)
	}
	if candidate.Amount == nil {
		return decimal.Zero, ErrAmountMissing
	}
	if !candidate.Amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	if candidate.Amount.Truncate(0).GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ErrAmountMalformed
	}
	return *candidate.Amount, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
