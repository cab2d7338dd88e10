package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// SummaryParams defines query parameters for the contribution summary.
// When Statuses is empty the summary covers every contribution of the member.
type SummaryParams struct {
	Statuses []string `form:"status" binding:"omitempty,dive,contribution_status"`
}

// MonthlyTotal is the sum of contributions for one calendar month.
type MonthlyTotal struct {
	Month string          `json:"month" example:"2025-01"`
	Total decimal.Decimal `json:"total"`
}

// SummaryResponse defines the data returned for a contribution summary.
type SummaryResponse struct {
	Total                decimal.Decimal  `json:"total"`
	MandatoryTotal       decimal.Decimal  `json:"mandatoryTotal"`
	VoluntaryTotal       decimal.Decimal  `json:"voluntaryTotal"`
	Count                int              `json:"count"`
	MandatoryCount       int              `json:"mandatoryCount"`
	VoluntaryCount       int              `json:"voluntaryCount"`
	Monthly              []MonthlyTotal   `json:"monthly"`
	CurrentMonthTotal    decimal.Decimal  `json:"currentMonthTotal"`
	LastContributionDate *string          `json:"lastContributionDate"`
	GrowthAvailable      bool             `json:"growthAvailable"`
	GrowthPercent        *decimal.Decimal `json:"growthPercent"`
}

// ToSummaryResponse converts a domain.ContributionSummary to SummaryResponse DTO.
// Monthly totals are listed in ascending month order.
func ToSummaryResponse(s domain.ContributionSummary) SummaryResponse {
	monthly := make([]MonthlyTotal, 0, len(s.Monthly))
	for _, k := range s.Months() {
		monthly = append(monthly, MonthlyTotal{Month: k.String(), Total: s.Monthly[k]})
	}
	res := SummaryResponse{
		Total:             s.Total,
		MandatoryTotal:    s.MandatoryTotal,
		VoluntaryTotal:    s.VoluntaryTotal,
		Count:             s.Count,
		MandatoryCount:    s.MandatoryCount,
		VoluntaryCount:    s.VoluntaryCount,
		Monthly:           monthly,
		CurrentMonthTotal: s.CurrentMonthTotal,
		GrowthAvailable:   s.Growth.Available,
	}
	if s.LastContributionDate != nil {
		d := formatDate(*s.LastContributionDate)
		res.LastContributionDate = &d
	}
	if s.Growth.Available {
		p := s.Growth.Percent
		res.GrowthPercent = &p
	}
	return res
}
