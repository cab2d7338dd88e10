package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementFilter selects the contributions that go into a statement.
// Both dates are inclusive calendar dates.
type StatementFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Types     []ContributionType
}

// ProjectionPoint is the projected balance at the end of a year from now.
type ProjectionPoint struct {
	Year    int             `json:"year"`
	Balance decimal.Decimal `json:"balance"`
}

// ProjectedBenefits is the retirement outlook derived from approved contributions.
type ProjectedBenefits struct {
	CurrentBalance           decimal.Decimal   `json:"currentBalance"`
	AverageMonthly           decimal.Decimal   `json:"averageMonthlyContribution"`
	YearsToRetirement        int               `json:"yearsToRetirement"`
	LumpSum                  decimal.Decimal   `json:"lumpSum"`
	InflationAdjustedLumpSum decimal.Decimal   `json:"inflationAdjustedLumpSum"`
	MonthlyPension           decimal.Decimal   `json:"monthlyPension"`
	Points                   []ProjectionPoint `json:"points"`
}

// Statement is a generated, non-persisted account statement for a member.
type Statement struct {
	StatementID       string
	MemberID          string
	MemberName        string
	GeneratedAt       time.Time
	Filter            StatementFilter
	Contributions     []Contribution
	TotalAmount       decimal.Decimal
	Summary           ContributionSummary
	ProjectedBenefits ProjectedBenefits
}
