package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexibleAmount accepts an amount sent either as a JSON number or as a JSON string and
// keeps the literal text so that admissibility is decided by the contribution rules.
// Exponent-form numbers are expanded to plain decimal text first.
type FlexibleAmount struct {
	Text string
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Text = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		a.Text = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Any other JSON value is kept verbatim and rejected by the amount rules.
		a.Text = string(data)
		return nil
	}
	a.Text = n.String()
	if strings.ContainsAny(a.Text, "eE") {
		d, err := decimal.NewFromString(a.Text)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		a.Text = d.String()
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a FlexibleAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Text)
}
