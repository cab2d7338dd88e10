package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionType distinguishes the required monthly contribution from additional ones.
type ContributionType string

const (
	Mandatory ContributionType = "mandatory"
	Voluntary ContributionType = "voluntary"
)

// IsValid reports whether t is one of the known contribution types.
func (t ContributionType) IsValid() bool {
	return t == Mandatory || t == Voluntary
}

// ContributionStatus is set by the approval workflow after a contribution is accepted.
type ContributionStatus string

const (
	StatusPending  ContributionStatus = "pending"
	StatusApproved ContributionStatus = "approved"
	StatusRejected ContributionStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s ContributionStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Contribution is an accepted pension contribution belonging to one member.
type Contribution struct {
	ContributionID string             `json:"contributionID"` // Assigned by persistence on acceptance
	MemberID       string             `json:"memberID"`
	Amount         decimal.Decimal    `json:"amount"`
	Date           time.Time          `json:"date"` // Calendar date, no time-of-day semantics
	Type           ContributionType   `json:"type"`
	Status         ContributionStatus `json:"status"`
	Reference      string             `json:"reference,omitempty"`
	Description    string             `json:"description,omitempty"`
	AuditFields
}

// ContributionInput is a candidate contribution that has not been admitted yet.
// ContributionID is only set when an existing pending contribution is being edited.
type ContributionInput struct {
	ContributionID string
	MemberID       string
	// Amount is used when the value arrived already numeric.
	Amount *decimal.Decimal
	// AmountText is the raw user-entered value; it takes precedence over Amount.
	AmountText  string
	Date        *time.Time
	Type        ContributionType
	Reference   string
	Description string
}
