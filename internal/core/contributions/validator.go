package contributions

import (
	"strings"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// Validate decides whether candidate may join existing, the member's current set.
//
// Checks run in a fixed order and the first failure is reported: required fields,
// amount, future date, one mandatory contribution per calendar month, unique reference.
// An entry in existing with the candidate's own ContributionID is ignored by the
// duplicate checks so that a pending contribution can be edited in place.
// now is the evaluation instant; dates are compared by calendar day.
func Validate(candidate domain.ContributionInput, existing []domain.Contribution, now time.Time) ValidationResult {
	if candidate.Date == nil || candidate.Date.IsZero() || candidate.Type == "" {
		return reject(MissingField, msgMissingField)
	}
	if !candidate.Type.IsValid() {
		return reject(MissingField, msgUnknownType)
	}

	if _, err := ResolveAmount(candidate); err != nil {
		return reject(InvalidAmount, msgInvalidAmount)
	}

	if DayOf(*candidate.Date).After(DayOf(now)) {
		return reject(FutureDate, msgFutureDate)
	}

	if candidate.Type == domain.Mandatory {
		month := MonthOf(*candidate.Date)
		for _, c := range existing {
			if isSelf(candidate, c) || c.Type != domain.Mandatory {
				continue
			}
			if MonthOf(c.Date) == month {
				return reject(DuplicateMandatoryMonth, msgDuplicateMandatoryMonth)
			}
		}
	}

	if ref := strings.TrimSpace(candidate.Reference); ref != "" {
		for _, c := range existing {
			if isSelf(candidate, c) {
				continue
			}
			if strings.TrimSpace(c.Reference) == ref {
				return reject(DuplicateReference, msgDuplicateReference)
			}
		}
	}

	return admit()
}

func isSelf(candidate domain.ContributionInput, c domain.Contribution) bool {
	return candidate.ContributionID != "" && c.ContributionID == candidate.ContributionID
}
