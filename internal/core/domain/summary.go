package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey identifies a calendar month. Its string form (YYYY-MM) sorts chronologically.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before reports whether k is an earlier month than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// GrowthIndicator is a period-over-period change. Percent is meaningful only when Available.
type GrowthIndicator struct {
	Available bool
	Percent   decimal.Decimal
}

// ContributionSummary is a derived, read-only view over a member's contribution set.
type ContributionSummary struct {
	Total                decimal.Decimal
	MandatoryTotal       decimal.Decimal
	VoluntaryTotal       decimal.Decimal
	Count                int
	MandatoryCount       int
	VoluntaryCount       int
	Monthly              map[MonthKey]decimal.Decimal
	CurrentMonthTotal    decimal.Decimal
	LastContributionDate *time.Time
	Growth               GrowthIndicator
}

// Months returns the keys of Monthly in ascending order.
func (s ContributionSummary) Months() []MonthKey {
	keys := make([]MonthKey, 0, len(s.Monthly))
	for k := range s.Monthly {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
