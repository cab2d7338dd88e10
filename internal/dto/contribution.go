package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// CreateContributionRequest defines the data submitted for a new contribution.
// Required fields are not enforced by binding: missing values are reported by the
// contribution rules as MISSING_FIELD.
type CreateContributionRequest struct {
	Amount      FlexibleAmount `json:"amount" swaggertype:"string" example:"25000.00"`
	Date        string         `json:"date" example:"2025-01-15"`
	Type        string         `json:"type" example:"mandatory"`
	Reference   string         `json:"reference,omitempty" binding:"max=100" example:"TXN-2025-001"`
	Description string         `json:"description,omitempty" binding:"max=500"`
}

// UpdateContributionRequest replaces the editable fields of a pending contribution.
type UpdateContributionRequest struct {
	CreateContributionRequest
}

// ToInput converts the request into a candidate for validation.
func (r CreateContributionRequest) ToInput(memberID, contributionID string) (domain.ContributionInput, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return domain.ContributionInput{}, err
	}
	return domain.ContributionInput{
		ContributionID: contributionID,
		MemberID:       memberID,
		AmountText:     r.Amount.Text,
		Date:           date,
		Type:           domain.ContributionType(strings.ToLower(strings.TrimSpace(r.Type))),
		Reference:      strings.TrimSpace(r.Reference),
		Description:    strings.TrimSpace(r.Description),
	}, nil
}

// UpdateContributionStatusRequest moves a pending contribution through approval.
type UpdateContributionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected" example:"approved"`
}

// ValidateContributionResponse is the result of a dry-run admission check.
type ValidateContributionResponse struct {
	Admit   bool   `json:"admit"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToValidateContributionResponse converts a validation result to its wire form.
func ToValidateContributionResponse(res contributions.ValidationResult) ValidateContributionResponse {
	out := ValidateContributionResponse{Admit: res.Admit}
	if res.Reason != nil {
		out.Reason = string(res.Reason.Kind)
		out.Message = res.Reason.Message
	}
	return out
}

// ContributionResponse defines the data returned for a contribution.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Reference      string          `json:"reference,omitempty"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToContributionResponse converts a domain.Contribution to ContributionResponse DTO.
func ToContributionResponse(c *domain.Contribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		MemberID:       c.MemberID,
		Amount:         c.Amount,
		Date:           formatDate(c.Date),
		Type:           string(c.Type),
		Status:         string(c.Status),
		Reference:      c.Reference,
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
	}
}

// ToContributionResponses converts a slice of domain.Contribution to []ContributionResponse.
func ToContributionResponses(list []domain.Contribution) []ContributionResponse {
	responses := make([]ContributionResponse, len(list))
	for i := range list {
		responses[i] = ToContributionResponse(&list[i])
	}
	return responses
}

// ListContributionsParams defines query parameters for the contribution history.
type ListContributionsParams struct {
	Types     []string `form:"type" binding:"omitempty,dive,contribution_type"`
	Statuses  []string `form:"status" binding:"omitempty,dive,contribution_status"`
	From      string   `form:"from"`
	To        string   `form:"to"`
	SortBy    string   `form:"sortBy" binding:"omitempty,oneof=date amount status"`
	SortOrder string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Limit     int      `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string   `form:"nextToken"`
}

// ToHistoryFilter converts query parameters into a history filter.
func (p ListContributionsParams) ToHistoryFilter() (contributions.HistoryFilter, error) {
	from, err := parseDate("from", p.From)
	if err != nil {
		return contributions.HistoryFilter{}, err
	}
	to, err := parseDate("to", p.To)
	if err != nil {
		return contributions.HistoryFilter{}, err
	}
	if from != nil && to != nil && contributions.DayOf(*to).Before(contributions.DayOf(*from)) {
		return contributions.HistoryFilter{}, fmt.Errorf("%w: to must not be before from", apperrors.ErrValidation)
	}
	return contributions.HistoryFilter{
		Types:    ToContributionTypes(p.Types),
		Statuses: ToContributionStatuses(p.Statuses),
		From:     from,
		To:       to,
		SortBy:   contributions.SortField(p.SortBy),
		Order:    contributions.SortOrder(p.SortOrder),
	}, nil
}

// QueryKey identifies the filter combination a pagination token belongs to.
func (p ListContributionsParams) QueryKey() string {
	return strings.Join([]string{
		strings.Join(p.Types, ","),
		strings.Join(p.Statuses, ","),
		p.From, p.To, p.SortBy, p.SortOrder,
	}, ";")
}

// ListContributionsResponse wraps a page of contributions.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

// ToContributionTypes converts raw values to contribution types, ignoring case.
func ToContributionTypes(values []string) []domain.ContributionType {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.ContributionType, len(values))
	for i, v := range values {
		out[i] = domain.ContributionType(strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

// ToContributionStatuses converts raw values to contribution statuses, ignoring case.
func ToContributionStatuses(values []string) []domain.ContributionStatus {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.ContributionStatus, len(values))
	for i, v := range values {
		out[i] = domain.ContributionStatus(strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
