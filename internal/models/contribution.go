package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is the persisted form of an accepted contribution.
// Period is the YYYY-MM calendar month of ContributionDate and backs the
// one-mandatory-per-month unique index.
type Contribution struct {
	ContributionID   string          `db:"contribution_id"`
	MemberID         string          `db:"member_id"`
	Amount           decimal.Decimal `db:"amount"`
	ContributionDate time.Time       `db:"contribution_date"`
	Period           string          `db:"period"`
	Type             string          `db:"contribution_type"`
	Status           string          `db:"status"`
	Reference        string          `db:"reference"`
	Description      string          `db:"description"`
	AuditFields
}
