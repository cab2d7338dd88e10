package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. A blank value yields nil.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", apperrors.ErrValidation, field)
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
