package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// GenerateStatementRequest defines the period and contribution types of a statement.
type GenerateStatementRequest struct {
	StartDate string   `json:"startDate" binding:"required" example:"2025-01-01"`
	EndDate   string   `json:"endDate" binding:"required" example:"2025-12-31"`
	Types     []string `json:"types,omitempty" binding:"omitempty,dive,contribution_type"`
}

// ToFilter validates the requested period and converts it into a statement filter.
func (r GenerateStatementRequest) ToFilter() (domain.StatementFilter, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return domain.StatementFilter{}, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return domain.StatementFilter{}, err
	}
	if start == nil || end == nil {
		return domain.StatementFilter{}, fmt.Errorf("%w: startDate and endDate are required", apperrors.ErrValidation)
	}
	if end.Before(*start) {
		return domain.StatementFilter{}, fmt.Errorf("%w: endDate must not be before startDate", apperrors.ErrValidation)
	}
	return domain.StatementFilter{
		StartDate: *start,
		EndDate:   *end,
		Types:     ToContributionTypes(r.Types),
	}, nil
}

// StatementPeriod is the inclusive date range of a statement.
type StatementPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// StatementResponse defines the data returned for a generated statement.
type StatementResponse struct {
	StatementID       string                   `json:"statementID"`
	MemberID          string                   `json:"memberID"`
	MemberName        string                   `json:"memberName"`
	GeneratedAt       time.Time                `json:"generatedAt"`
	Period            StatementPeriod          `json:"period"`
	Types             []string                 `json:"types,omitempty"`
	Contributions     []ContributionResponse   `json:"contributions"`
	TotalAmount       decimal.Decimal          `json:"totalAmount"`
	Summary           SummaryResponse          `json:"summary"`
	ProjectedBenefits domain.ProjectedBenefits `json:"projectedBenefits"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse DTO.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	var types []string
	for _, t := range s.Filter.Types {
		types = append(types, string(t))
	}
	return StatementResponse{
		StatementID: s.StatementID,
		MemberID:    s.MemberID,
		MemberName:  s.MemberName,
		GeneratedAt: s.GeneratedAt,
		Period: StatementPeriod{
			StartDate: formatDate(s.Filter.StartDate),
			EndDate:   formatDate(s.Filter.EndDate),
		},
		Types:             types,
		Contributions:     ToContributionResponses(s.Contributions),
		TotalAmount:       s.TotalAmount,
		Summary:           ToSummaryResponse(s.Summary),
		ProjectedBenefits: s.ProjectedBenefits,
	}
}
