package contributions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// Summarize computes totals, counts and a monthly breakdown over contributions.
//
// Every contribution passed in is counted; filtering by status is the caller's job.
// Records with an unknown type or a zero date are skipped rather than failing the whole
// summary. Growth is reported as unavailable: no period-over-period comparison is defined.
func Summarize(contributions []domain.Contribution, now time.Time) domain.ContributionSummary {
	summary := domain.ContributionSummary{
		Total:             decimal.Zero,
		MandatoryTotal:    decimal.Zero,
		VoluntaryTotal:    decimal.Zero,
		Monthly:           make(map[domain.MonthKey]decimal.Decimal),
		CurrentMonthTotal: decimal.Zero,
		Growth:            domain.GrowthIndicator{Available: false, Percent: decimal.Zero},
	}

	for _, c := range contributions {
		if c.Date.IsZero() || !c.Type.IsValid() {
			continue
		}

		summary.Total = summary.Total.Add(c.Amount)
		summary.Count++
		switch c.Type {
		case domain.Mandatory:
			summary.MandatoryTotal = summary.MandatoryTotal.Add(c.Amount)
			summary.MandatoryCount++
		case domain.Voluntary:
			summary.VoluntaryTotal = summary.VoluntaryTotal.Add(c.Amount)
			summary.VoluntaryCount++
		}

		key := MonthOf(c.Date)
		if running, ok := summary.Monthly[key]; ok {
			summary.Monthly[key] = running.Add(c.Amount)
		} else {
			summary.Monthly[key] = c.Amount
		}

		day := DayOf(c.Date)
		if summary.LastContributionDate == nil || day.After(*summary.LastContributionDate) {
			summary.LastContributionDate = &day
		}
	}

	if current, ok := summary.Monthly[MonthOf(now)]; ok {
		summary.CurrentMonthTotal = current
	}

	return summary
}
