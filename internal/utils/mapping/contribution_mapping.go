package mapping

import (
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/models"
)

// ToModelContribution converts a domain Contribution to a model Contribution.
// The stored date is normalised to its calendar day and Period is derived from it.
func ToModelContribution(d domain.Contribution) models.Contribution {
	day := contributions.DayOf(d.Date)
	return models.Contribution{
		ContributionID:   d.ContributionID,
		MemberID:         d.MemberID,
		Amount:           d.Amount,
		ContributionDate: day,
		Period:           contributions.MonthOf(day).String(),
		Type:             string(d.Type),
		Status:           string(d.Status),
		Reference:        d.Reference,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContribution converts a model Contribution to a domain Contribution
func ToDomainContribution(m models.Contribution) domain.Contribution {
	return domain.Contribution{
		ContributionID: m.ContributionID,
		MemberID:       m.MemberID,
		Amount:         m.Amount,
		Date:           m.ContributionDate,
		Type:           domain.ContributionType(m.Type),
		Status:         domain.ContributionStatus(m.Status),
		Reference:      m.Reference,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContributionSlice converts a slice of model Contributions to a slice of domain Contributions
func ToDomainContributionSlice(ms []models.Contribution) []domain.Contribution {
	ds := make([]domain.Contribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContribution(m)
	}
	return ds
}
