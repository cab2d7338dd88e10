package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/utils"
)

// EventType names a contribution lifecycle event. It is also used as the AMQP message type.
type EventType string

const (
	ContributionSubmitted     EventType = "contribution.submitted"
	ContributionStatusChanged EventType = "contribution.status_changed"
)

// ContributionEvent is published after a contribution is accepted or changes status.
type ContributionEvent struct {
	EventID          string                    `json:"eventID"`
	Type             EventType                 `json:"type"`
	ContributionID   string                    `json:"contributionID"`
	MemberID         string                    `json:"memberID"`
	Amount           decimal.Decimal           `json:"amount"`
	ContributionType domain.ContributionType   `json:"contributionType"`
	Status           domain.ContributionStatus `json:"status"`
	PreviousStatus   domain.ContributionStatus `json:"previousStatus,omitempty"`
	Date             string                    `json:"date"`
	OccurredAt       time.Time                 `json:"occurredAt"`
}

// NewContributionEvent builds an event describing c at the given instant.
func NewContributionEvent(eventType EventType, c domain.Contribution, at time.Time) *ContributionEvent {
	return &ContributionEvent{
		EventID:          uuid.NewString(),
		Type:             eventType,
		ContributionID:   c.ContributionID,
		MemberID:         c.MemberID,
		Amount:           c.Amount,
		ContributionType: c.Type,
		Status:           c.Status,
		Date:             c.Date.Format("2006-01-02"),
		OccurredAt:       at,
	}
}

// ToJSON converts the event to JSON bytes
func (e *ContributionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ContributionEventFromJSON creates an event from JSON bytes
func ContributionEventFromJSON(data []byte) (*ContributionEvent, error) {
	var e ContributionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.Type == "" || e.ContributionID == "" {
		return nil, fmt.Errorf("event is missing type or contribution id")
	}
	return &e, nil
}

// Notification renders the member-facing title and message for the event.
func (e *ContributionEvent) Notification() (title, message string) {
	amount := utils.FormatAmount(e.Amount)
	switch {
	case e.Type == ContributionSubmitted:
		return "New Contribution", fmt.Sprintf("%s contribution of %s was successfully processed.", e.ContributionType, amount)
	case e.Type == ContributionStatusChanged && e.Status == domain.StatusApproved:
		return "Contribution Approved", fmt.Sprintf("Your %s contribution of %s dated %s has been approved.", e.ContributionType, amount, e.Date)
	case e.Type == ContributionStatusChanged && e.Status == domain.StatusRejected:
		return "Contribution Rejected", fmt.Sprintf("Your %s contribution of %s dated %s has been rejected.", e.ContributionType, amount, e.Date)
	default:
		return "Contribution Updated", fmt.Sprintf("Your %s contribution of %s is now %s.", e.ContributionType, amount, e.Status)
	}
}
