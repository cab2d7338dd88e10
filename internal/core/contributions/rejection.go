package contributions

import "github.com/SscSPs/pension_management_app/internal/apperrors"

// RejectionKind names the rule a candidate contribution failed.
type RejectionKind string

const (
	MissingField            RejectionKind = "MISSING_FIELD"
	InvalidAmount           RejectionKind = "INVALID_AMOUNT"
	FutureDate              RejectionKind = "FUTURE_DATE"
	DuplicateMandatoryMonth RejectionKind = "DUPLICATE_MANDATORY_MONTH"
	DuplicateReference      RejectionKind = "DUPLICATE_REFERENCE"
)

const (
	msgMissingField            = "Missing required contribution information"
	msgUnknownType             = "Contribution type must be mandatory or voluntary"
	msgInvalidAmount           = "Amount must be a positive number with at most 2 decimal places"
	msgFutureDate              = "Contribution date cannot be in the future"
	msgDuplicateMandatoryMonth = "Only one mandatory contribution is allowed per calendar month"
	msgDuplicateReference      = "Duplicate transaction reference detected"
)

// Rejection explains why a candidate was not admitted. It is an ordinary outcome,
// returned as data; it also satisfies error so services can propagate it.
type Rejection struct {
	Kind    RejectionKind `json:"reason"`
	Message string        `json:"message"`
}

func (r *Rejection) Error() string {
	return r.Message
}

// Unwrap lets callers classify rejections with errors.Is against the app sentinels.
func (r *Rejection) Unwrap() error {
	switch r.Kind {
	case DuplicateMandatoryMonth, DuplicateReference:
		return apperrors.ErrDuplicate
	default:
		return apperrors.ErrValidation
	}
}

// ValidationResult is the outcome of Validate. Reason is nil when Admit is true.
type ValidationResult struct {
	Admit  bool
	Reason *Rejection
}

// Err returns the rejection as an error, or nil when the candidate was admitted.
func (r ValidationResult) Err() error {
	if r.Admit || r.Reason == nil {
		return nil
	}
	return r.Reason
}

var defaultMessages = map[RejectionKind]string{
	MissingField:            msgMissingField,
	InvalidAmount:           msgInvalidAmount,
	FutureDate:              msgFutureDate,
	DuplicateMandatoryMonth: msgDuplicateMandatoryMonth,
	DuplicateReference:      msgDuplicateReference,
}

// NewRejection returns a rejection of the given kind with its standard message.
// Storage adapters use it to report uniqueness violations detected by the database.
func NewRejection(kind RejectionKind) *Rejection {
	return &Rejection{Kind: kind, Message: defaultMessages[kind]}
}

func admit() ValidationResult {
	return ValidationResult{Admit: true}
}

func reject(kind RejectionKind, message string) ValidationResult {
	return ValidationResult{Reason: &Rejection{Kind: kind, Message: message}}
}
