package benefits

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// workingPrecision bounds intermediate rounding during monthly compounding.
const workingPrecision = 8

// Assumptions are the inputs of a projection that do not come from the contribution history.
type Assumptions struct {
	AnnualReturnRate     decimal.Decimal
	InflationRate        decimal.Decimal
	YearsToRetirement    int
	PensionDurationYears int
}

// Project estimates retirement benefits from a member's contribution history.
//
// Only approved contributions count towards the current balance. The average monthly
// contribution is the balance spread over the calendar months between the earliest and
// latest approved contribution (or the whole balance when they fall in one month). That
// average is added every month until retirement and the balance compounds monthly at
// AnnualReturnRate/12. The monthly pension spreads the projected lump sum evenly over
// PensionDurationYears.
func Project(history []domain.Contribution, a Assumptions) domain.ProjectedBenefits {
	approved := contributions.FilterByStatus(history, []domain.ContributionStatus{domain.StatusApproved})

	years := a.YearsToRetirement
	if years < 0 {
		years = 0
	}
	result := domain.ProjectedBenefits{
		CurrentBalance:           decimal.Zero,
		AverageMonthly:           decimal.Zero,
		YearsToRetirement:        years,
		LumpSum:                  decimal.Zero,
		InflationAdjustedLumpSum: decimal.Zero,
		MonthlyPension:           decimal.Zero,
		Points:                   []domain.ProjectionPoint{},
	}
	if len(approved) == 0 {
		return result
	}

	balance := decimal.Zero
	earliest, latest := approved[0].Date, approved[0].Date
	for _, c := range approved {
		balance = balance.Add(c.Amount)
		if c.Date.Before(earliest) {
			earliest = c.Date
		}
		if c.Date.After(latest) {
			latest = c.Date
		}
	}

	average := balance
	if months := contributions.MonthsSpanned(earliest, latest); months > 1 {
		average = balance.Div(decimal.NewFromInt(int64(months)))
	}

	monthlyGrowth := decimal.NewFromInt(1).Add(a.AnnualReturnRate.Div(decimal.NewFromInt(12)))
	future := balance
	result.Points = append(result.Points, domain.ProjectionPoint{Year: 0, Balance: future.Round(2)})
	for month := 1; month <= years*12; month++ {
		future = future.Add(average).Mul(monthlyGrowth).Round(workingPrecision)
		if month%12 == 0 {
			result.Points = append(result.Points, domain.ProjectionPoint{Year: month / 12, Balance: future.Round(2)})
		}
	}

	deflator := decimal.NewFromInt(1)
	inflationStep := decimal.NewFromInt(1).Add(a.InflationRate)
	for i := 0; i < years; i++ {
		deflator = deflator.Mul(inflationStep)
	}

	result.CurrentBalance = balance.Round(2)
	result.AverageMonthly = average.Round(2)
	result.LumpSum = future.Round(2)
	result.InflationAdjustedLumpSum = future.Div(deflator).Round(2)
	if a.PensionDurationYears > 0 {
		result.MonthlyPension = future.Div(decimal.NewFromInt(int64(a.PensionDurationYears * 12))).Round(2)
	}
	return result
}
